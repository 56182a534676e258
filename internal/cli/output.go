package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/golazo-bot/golazo/internal/feed"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteTable renders the league standings in the given format.
func WriteTable(w io.Writer, rows []feed.TableRow, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatText:
		return writeTableText(w, rows)
	}
	return fmt.Errorf("unknown format: %s", format)
}

// WriteScorers renders the top scorers in the given format.
func WriteScorers(w io.Writer, scorers []feed.TopScorer, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, scorers)
	case FormatText:
		return writeScorersText(w, scorers)
	}
	return fmt.Errorf("unknown format: %s", format)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeTableText(w io.Writer, rows []feed.TableRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No standings available.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tEquipo\tPJ\tG\tE\tP\tGF\tGC\tPts")
	for i, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			i+1, row.Name, row.Played, row.Won, row.Drawn, row.Lost,
			row.GoalsFor, row.GoalsAgainst, row.Points)
	}
	return tw.Flush()
}

func writeScorersText(w io.Writer, scorers []feed.TopScorer) error {
	if len(scorers) == 0 {
		fmt.Fprintln(w, "No scorers available.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tJugador\tEquipo\tGoles")
	for i, s := range scorers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, s.Name, s.Team.Name, s.Goals.String())
	}
	return tw.Flush()
}
