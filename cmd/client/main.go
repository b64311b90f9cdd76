package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adrianliechti/prism/pkg/client"
	"github.com/adrianliechti/prism/pkg/engine"
	"github.com/adrianliechti/prism/pkg/session"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	bold  = lipgloss.NewStyle().Bold(true)
	dim   = lipgloss.NewStyle().Faint(true)
	link  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Underline(true)
	alert = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	client := client.New(*urlFlag, options...)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	if err != nil {
		panic(err)
	}

	if err := printEngines(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, alert.Render(err.Error()))
		os.Exit(1)
	}

	s := session.New(client.Searcher(),
		session.WithSummarizer(client.Summarizer()),
		session.WithChangeHandler(printProgress),
	)

	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

	for {
		fmt.Fprint(output, bold.Render(">>> "))

		input, err := reader.ReadString('\n')

		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}

			panic(err)
		}

		query := strings.TrimSpace(input)

		if query == "" {
			continue
		}

		if query == "/reset" {
			s.Reset()
			continue
		}

		state, err := s.Submit(ctx, query)

		if err != nil {
			fmt.Fprintln(output, alert.Render(err.Error()))
			continue
		}

		printResults(output, state)
		printAnswer(output, renderer, state)
	}
}

func printEngines(ctx context.Context, c *client.Client) error {
	engines, err := c.Engines.List(ctx)

	if err != nil {
		return err
	}

	var names []string

	for _, e := range engines {
		if !e.Configured {
			continue
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Bold(true)
		names = append(names, style.Render(e.Name))
	}

	fmt.Println("Searching " + strings.Join(names, dim.Render(", ")))
	fmt.Println()

	return nil
}

func printProgress(state session.State) {
	switch {
	case state.Searching:
		fmt.Println(dim.Render("searching..."))

	case state.Summarizing:
		fmt.Println(dim.Render("summarizing..."))
	}
}

func printResults(w io.Writer, state session.State) {
	groups := state.Grouped()

	for _, e := range engine.All() {
		results := groups[e]

		if len(results) == 0 {
			continue
		}

		info := e.Info()

		badge := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(info.Color)).
			Padding(0, 1).
			Render(info.Initial)

		fmt.Fprintln(w, badge+" "+bold.Render(info.Name))

		for _, r := range results {
			fmt.Fprintln(w, "  "+bold.Render(r.Title))
			fmt.Fprintln(w, "  "+link.Render(r.URL))

			if r.Snippet != "" {
				fmt.Fprintln(w, "  "+dim.Render(r.Snippet))
			}

			fmt.Fprintln(w)
		}
	}

	for _, f := range state.Failures {
		fmt.Fprintln(w, alert.Render(f.Error()))
	}
}

func printAnswer(w io.Writer, renderer *glamour.TermRenderer, state session.State) {
	if state.AnswerErr != nil {
		fmt.Fprintln(w, alert.Render(state.AnswerErr.Error()))
		return
	}

	if state.Answer == nil {
		return
	}

	out, err := renderer.Render(state.Answer.Text)

	if err != nil {
		out = state.Answer.Text
	}

	fmt.Fprintln(w, out)
}
