package standings

import "testing"

func sampleDoc() Doc {
	return Doc{
		League: League{
			Name: "National Basketball Association",
			Standings: [][]TeamStanding{
				{
					{Rank: 1, Team: Team{Name: "Boston Celtics", Abbreviation: "BOS"}, Wins: 48, Losses: 12, Played: 60, WinPct: 0.8},
					{Rank: 2, Team: Team{Name: "Milwaukee Bucks", Abbreviation: "MIL"}, Wins: 44, Losses: 16, Played: 60, WinPct: 0.733},
				},
				{
					{Rank: 1, Team: Team{Name: "Denver Nuggets", Abbreviation: "DEN"}, Wins: 45, Losses: 15, Played: 60, WinPct: 0.75},
				},
			},
		},
	}
}

func TestFindTeam(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()

	row := doc.FindTeam("celtics")
	if row == nil {
		t.Fatalf("expected partial-name match to find Boston Celtics")
	}
	if row.Rank != 1 || row.Wins != 48 {
		t.Fatalf("expected rank=1 wins=48, got rank=%d wins=%d", row.Rank, row.Wins)
	}

	if row := doc.FindTeam("Denver Nuggets Basketball Club"); row == nil {
		t.Fatalf("expected longer query containing row name to match")
	}

	if row := doc.FindTeam("Lakers"); row != nil {
		t.Fatalf("expected no match, got %+v", row)
	}
	if row := doc.FindTeam(""); row != nil {
		t.Fatalf("blank query must not match, got %+v", row)
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	docs := Wrap(sampleDoc())
	if len(docs) != 1 {
		t.Fatalf("expected array-of-one document, got len=%d", len(docs))
	}
	if docs[0].League.Name != "National Basketball Association" {
		t.Fatalf("unexpected league name %q", docs[0].League.Name)
	}
}
