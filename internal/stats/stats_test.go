package stats

import (
	"strings"
	"testing"

	"github.com/civictools/cdflint/internal/cdf"
)

func countFeed(t *testing.T) *cdf.EntityIndex {
	t.Helper()
	doc, err := cdf.ParseBytes([]byte(`<ElectionReport xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <CandidateCollection>
    <Candidate objectId="can1"><BallotName>A</BallotName><PartyId>par1</PartyId></Candidate>
    <Candidate objectId="can2"><BallotName>B</BallotName></Candidate>
    <Candidate objectId="can3"><BallotName>C</BallotName></Candidate>
  </CandidateCollection>
  <PartyCollection>
    <Party objectId="par1"><Name>Union</Name></Party>
  </PartyCollection>
</ElectionReport>`))
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	ix, _ := cdf.BuildIndex(doc)
	return ix
}

func TestCount(t *testing.T) {
	counts := Count(countFeed(t))

	if len(counts) != 2 {
		t.Fatalf("Count() returned %d entities, want 2 (Candidate, Party): %+v", len(counts), counts)
	}
	// Alphabetical entity order.
	if counts[0].Name != "Candidate" || counts[1].Name != "Party" {
		t.Errorf("entity order = %s, %s, want Candidate, Party", counts[0].Name, counts[1].Name)
	}
	if counts[0].Total != 3 {
		t.Errorf("Candidate total = %d, want 3", counts[0].Total)
	}

	// Most common attribute first.
	if counts[0].Attributes[0].Name != "BallotName" || counts[0].Attributes[0].Present != 3 {
		t.Errorf("top Candidate attribute = %+v, want BallotName present 3", counts[0].Attributes[0])
	}

	var party int
	for _, ac := range counts[0].Attributes {
		if ac.Name == "PartyId" {
			party = ac.Present
		}
	}
	if party != 1 {
		t.Errorf("PartyId present = %d, want 1", party)
	}
}

func TestFormat(t *testing.T) {
	out := Format(Count(countFeed(t)))

	for _, want := range []string{
		"Entity and Attribute Counts:",
		"Candidate (Total: 3)",
		"Party (Total: 1)",
		"# with attribute",
		"# missing attribute",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestCountEmptyFeed(t *testing.T) {
	doc, err := cdf.ParseBytes([]byte(`<ElectionReport/>`))
	if err != nil {
		t.Fatal(err)
	}
	ix, _ := cdf.BuildIndex(doc)
	if counts := Count(ix); len(counts) != 0 {
		t.Errorf("Count() = %+v, want empty for a bare feed", counts)
	}
}
