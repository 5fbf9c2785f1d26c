package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"crunchlist/internal/catalog"
	"crunchlist/internal/cover"
	"crunchlist/internal/textutil"
)

const emptyValue = "-"

func formatEpisodes(v *int) string {
	if v == nil {
		return emptyValue
	}
	return strconv.Itoa(*v)
}

func formatScore(v *float64) string {
	if v == nil {
		return emptyValue
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return emptyValue
	}
	return textutil.JoinList(items)
}

func favoriteMark(favorite bool) string {
	if favorite {
		return "★"
	}
	return ""
}

func formatWhen(ms int64, now time.Time) string {
	if ms <= 0 {
		return emptyValue
	}
	return humanize.RelTime(time.UnixMilli(ms), now, "ago", "from now")
}

func entryRows(entries []catalog.Entry, now time.Time) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID,
			e.Title,
			string(e.Status),
			formatEpisodes(e.Episodes),
			formatScore(e.Score),
			formatList(e.Tags),
			favoriteMark(e.Favorite),
			formatWhen(e.CreatedAt, now),
		})
	}
	return rows
}

var entryColumns = []column{
	{title: "ID"},
	{title: "Title"},
	{title: "Status"},
	{title: "Episodes", right: true},
	{title: "Score", right: true},
	{title: "Tags"},
	{title: "Fav"},
	{title: "Added"},
}

func writeEntryDetail(out io.Writer, e catalog.Entry, now time.Time) {
	fmt.Fprintf(out, "%s %s\n", e.Title, favoriteMark(e.Favorite))
	fmt.Fprintln(out, strings.Repeat("-", len([]rune(e.Title))+2))
	fmt.Fprintf(out, "ID:        %s\n", e.ID)
	fmt.Fprintf(out, "Status:    %s\n", e.Status)
	fmt.Fprintf(out, "Episodes:  %s\n", formatEpisodes(e.Episodes))
	fmt.Fprintf(out, "Score:     %s\n", formatScore(e.Score))
	fmt.Fprintf(out, "Genres:    %s\n", formatList(e.Genres))
	fmt.Fprintf(out, "Tags:      %s\n", formatList(e.Tags))
	fmt.Fprintf(out, "Favorite:  %s\n", yesNo(e.Favorite))
	fmt.Fprintf(out, "Cover:     %s\n", describeCover(e.Cover))
	fmt.Fprintf(out, "Added:     %s\n", formatWhen(e.CreatedAt, now))
	fmt.Fprintf(out, "Updated:   %s\n", formatWhen(e.UpdatedAt, now))
	if synopsis := strings.TrimSpace(e.Synopsis); synopsis != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, synopsis)
	}
}

func describeCover(dataURL string) string {
	if dataURL == "" {
		return "none"
	}
	info, err := cover.Describe(dataURL)
	if err != nil {
		return "unreadable"
	}
	return info.String()
}
