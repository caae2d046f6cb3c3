package main

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/lambert-ike-1232/pidlab/lessons"
	"github.com/spf13/cobra"
)

var plainLesson bool

var lessonCmd = &cobra.Command{
	Use:   "lesson [id]",
	Short: "Print a lesson, or list them all",
	Long: `Without arguments, lists the lessons in reading order. With an ID or
any unambiguous prefix of one, renders that lesson to the terminal.

Example:
  pidlab lesson 02`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLesson,
}

func init() {
	lessonCmd.Flags().BoolVar(&plainLesson, "plain", false, "Print raw markdown without styling")
}

func runLesson(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSetup()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		all, err := lessons.List()
		if err != nil {
			return err
		}
		for _, lesson := range all {
			fmt.Printf("%-24s %s\n", lesson.ID, lesson.Title)
		}
		return nil
	}

	lesson, err := lessons.Load(args[0])
	if err != nil {
		return err
	}
	if plainLesson {
		fmt.Println(lesson.Body)
		return nil
	}

	out, err := renderMarkdown(lesson.Body, cfg.Theme)
	if err != nil {
		// Fall back to the raw markdown when the style fails to load.
		fmt.Println(lesson.Body)
		return nil
	}
	fmt.Print(out)
	return nil
}

func renderMarkdown(body, theme string) (string, error) {
	style := glamour.WithStandardStyle(theme)
	if theme == "" || theme == "auto" {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return "", err
	}
	return r.Render(body)
}
