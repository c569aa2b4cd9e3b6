package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestStartCompVCompGames(t *testing.T) {
	is := is.New(t)
	out := filepath.Join(t.TempDir(), "autoplay.csv")
	done, err := StartCompVCompGames(context.Background(), fastConfig(), 4, 2, out, GenerateSeeds(4))
	is.NoErr(err)
	<-done
	is.Equal(CVCCounter.Value(), int64(4))
	is.Equal(IsPlaying.Value(), int64(0))

	turns, err := os.ReadFile(out)
	is.NoErr(err)
	is.True(strings.HasPrefix(string(turns), TurnLogHeader))

	games, err := os.ReadFile(GamesFilename(out))
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(games)), "\n")
	is.Equal(len(lines), 5)

	summary, err := AnalyzeLogFile(GamesFilename(out))
	is.NoErr(err)
	is.True(strings.Contains(summary, "Games played: 4\n"))
}

func TestAnalyzeLogFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "games.csv")
	data := GameLogHeader +
		"a,p1,p2,40,24,p1,58\n" +
		"b,p1,p2,20,44,p2,60\n" +
		"c,p1,p2,32,32,p1,60\n"
	is.NoErr(os.WriteFile(path, []byte(data), 0o644))

	summary, err := AnalyzeLogFile(path)
	is.NoErr(err)
	is.True(strings.Contains(summary, "Games played: 3\n"))
	is.True(strings.Contains(summary, "p1 wins: 1.5 (50.000%)\n"))
	is.True(strings.Contains(summary, "p1 went first: 2.0 (66.667%)\n"))
	is.True(strings.Contains(summary, "Player who went first wins: 2.5 (83.333%)\n"))
	is.True(strings.Contains(summary, "p1 Mean Discs: 30.667"))

	_, err = AnalyzeLogFile(filepath.Join(t.TempDir(), "none.csv"))
	is.True(err != nil)
}

func TestSeedsRoundTrip(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(3)
	is.NoErr(SaveSeeds(seeds, path))
	loaded, err := LoadSeeds(path)
	is.NoErr(err)
	is.Equal(loaded, seeds)

	is.NoErr(os.WriteFile(path, []byte("# comment\n\nAAAA\n"), 0o644))
	_, err = LoadSeeds(path)
	is.True(err != nil)
}

func TestGamesFilename(t *testing.T) {
	is := is.New(t)
	is.Equal(GamesFilename("/tmp/out.csv"), "/tmp/out_games.csv")
	is.Equal(GamesFilename("log"), "log_games.csv")
}
