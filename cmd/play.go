package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moviequiz/quiz"
)

var honestAnswers bool

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz round",
	Long: `Play one round of rating-comparison questions against the loaded
movie catalog. Answer each question with y or n.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&honestAnswers, "honest", false, "draw comparisons at random instead of always-true questions")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if honestAnswers {
		cfg.Quiz.HonestAnswers = true
	}

	factory, err := newFactory()
	if err != nil {
		return err
	}

	store, err := openStatsStore()
	if err != nil {
		return err
	}
	defer store.Close()

	view := newConsoleView()
	controller := quiz.NewController(factory, store, view, cfg.Quiz.QuestionsPerRound, logger)

	ctx := cmd.Context()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Loading movie catalog...")
	controller.RequestLoad(ctx)

	for event := range view.events {
		switch event.kind {
		case eventLoadComplete:
			fmt.Println("Catalog loaded.")

		case eventQuestion:
			fmt.Printf("\nQuestion %d/%d (poster: %d bytes)\n", event.number, event.total, len(event.question.Poster))
			fmt.Println(event.question.Text)
			controller.SubmitAnswer(ctx, promptYesNo(reader, "Your answer [y/n]: "))

		case eventAnswer:
			if event.correct {
				fmt.Println("✓ Correct!")
			} else {
				fmt.Println("✗ Wrong.")
			}

		case eventLoadFailed:
			fmt.Println(errorMessage(event.err))
			if !promptYesNo(reader, "Retry? [y/n]: ") {
				return nil
			}
			if controller.State() == quiz.StateInProgress {
				controller.RequestNextQuestion(ctx)
			} else {
				controller.RequestLoad(ctx)
			}

		case eventNoMoreQuestions:
			fmt.Println("\nNo more questions available.")
			if controller.State() == quiz.StateIdle {
				return nil
			}

		case eventRoundComplete:
			printSummary(event.summary)
			if !promptYesNo(reader, "Play again? [y/n]: ") {
				return nil
			}
			controller.RequestRestart(ctx)
		}
	}

	return nil
}

func printSummary(summary quiz.Summary) {
	fmt.Println("\nThis round is over!")
	fmt.Printf("Your result: %d/%d\n", summary.Correct, summary.Total)
	fmt.Printf("Quizzes played: %d\n", summary.GamesCount)
	fmt.Printf("Record: %d/%d (%s)\n", summary.BestGame.Correct, summary.BestGame.Total,
		summary.BestGame.Date.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Average accuracy: %.2f%%\n", summary.TotalAccuracy)
}

func promptYesNo(reader *bufio.Reader, prompt string) bool {
	for {
		fmt.Print(prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		fmt.Println("Please answer y or n.")
	}
}
