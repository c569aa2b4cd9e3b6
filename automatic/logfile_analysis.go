package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/domino14/othello/stats"
)

// AnalyzeLogFile reads a per-game CSV file written by StartCompVCompGames
// and summarizes wins and disc counts.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,p1,p2,p1discs,p2discs,first,turns
	p1stats := &stats.Statistic{}
	p2stats := &stats.Statistic{}
	turnStats := &stats.Statistic{}

	p1wl := 0.0
	p1first := 0.0
	wentFirstWL := 0.0
	gamesPlayed := 0
	var p1Name, p2Name string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			continue
		}
		if len(record) < 7 {
			return "", fmt.Errorf("short record for game %s", record[0])
		}
		p1Name, p2Name = record[1], record[2]
		p1discs, err := strconv.Atoi(record[3])
		if err != nil {
			return "", err
		}
		p2discs, err := strconv.Atoi(record[4])
		if err != nil {
			return "", err
		}
		turns, err := strconv.Atoi(record[6])
		if err != nil {
			return "", err
		}
		p1stats.Push(float64(p1discs))
		p2stats.Push(float64(p2discs))
		turnStats.Push(float64(turns))

		p1wentFirst := record[5] == p1Name
		switch {
		case p1discs > p2discs:
			p1wl += 1.0
			if p1wentFirst {
				wentFirstWL += 1.0
			}
		case p1discs == p2discs:
			p1wl += 0.5
			wentFirstWL += 0.5
		default:
			if !p1wentFirst {
				wentFirstWL += 1.0
			}
		}
		if p1wentFirst {
			p1first++
		}
		gamesPlayed++
	}
	if gamesPlayed == 0 {
		return "", errors.New("no games in log file")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", gamesPlayed)
	fmt.Fprintf(&sb, "%v wins: %.1f (%.3f%%)\n", p1Name, p1wl, 100.0*p1wl/float64(gamesPlayed))
	fmt.Fprintf(&sb, "%v went first: %.1f (%.3f%%)\n", p1Name, p1first, 100.0*p1first/float64(gamesPlayed))
	fmt.Fprintf(&sb, "Player who went first wins: %.1f (%.3f%%)\n",
		wentFirstWL, 100.0*wentFirstWL/float64(gamesPlayed))
	fmt.Fprintf(&sb, "%v Mean Discs: %.3f  Stdev: %.3f  95%% CI: ±%.3f\n",
		p1Name, p1stats.Mean(), p1stats.Stdev(), p1stats.ConfidenceInterval(95))
	fmt.Fprintf(&sb, "%v Mean Discs: %.3f  Stdev: %.3f  95%% CI: ±%.3f\n",
		p2Name, p2stats.Mean(), p2stats.Stdev(), p2stats.ConfidenceInterval(95))
	fmt.Fprintf(&sb, "Mean Turns: %.2f\n", turnStats.Mean())
	return sb.String(), nil
}
