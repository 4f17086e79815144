package chunking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/oralargs/speaker"
	"github.com/maastricht-university/oralargs/transcript"
)

// simpleArgument is one advocate exchanging with one justice, closed by the
// chief justice handing over to the next advocate.
func simpleArgument() []line {
	return []line{
		intro("0_000", "We'll hear argument first this morning in Case 18-1, Smith versus Jones. Ms. Smith."),
		adv("0_001"),
		rbg("0_002"),
		adv("0_003"),
		rbg("0_004"),
		intro("0_005", "Thank you, counsel. Mr. Jones."),
		{"1_000", jones, transcript.RawAdvocate, "Mr. Chief Justice, and may it please the Court."},
	}
}

func TestDetector_SimpleArgument(t *testing.T) {
	tb := testTables()
	c := buildCorpus(t, testCase, "900", simpleArgument())
	d := NewDetector(speaker.FromTables(tb))

	got, err := d.Detect(c.CaseUtterances(testCase))
	require.NoError(t, err)
	assert.Equal(t, []string{"900__0_000", "900__0_004", "900__0_005"}, got)
}

func TestDetector_Idempotent(t *testing.T) {
	tb := testTables()
	c := buildCorpus(t, testCase, "900", simpleArgument())
	d := NewDetector(speaker.FromTables(tb))

	first, err := d.Detect(c.CaseUtterances(testCase))
	require.NoError(t, err)
	second, err := d.Detect(c.CaseUtterances(testCase))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDetector_JusticeRotation(t *testing.T) {
	tb := testTables()
	c := buildCorpus(t, testCase, "900", []line{
		intro("0_000", "Ms. Smith."),
		adv("0_001"),
		rbg("0_002"),
		adv("0_003"),
		{"0_004", kagan, transcript.RawJustice, ""},
		adv("0_005"),
		{"0_006", kagan, transcript.RawJustice, ""},
		intro("0_007", "Thank you, counsel."),
	})

	got, err := NewDetector(speaker.FromTables(tb)).Detect(c.CaseUtterances(testCase))
	require.NoError(t, err)
	// the rotation closes the first exchange at the justice's last reply
	assert.Equal(t, []string{"900__0_000", "900__0_002", "900__0_006"}, got)
}

func TestDetector_NewAdvocateClosesExchange(t *testing.T) {
	tb := testTables()
	c := buildCorpus(t, testCase, "900", []line{
		intro("0_000", "Ms. Smith."),
		adv("0_001"),
		rbg("0_002"),
		adv("0_003"),
		{"0_004", jones, transcript.RawAdvocate, ""},
	})

	got, err := NewDetector(speaker.FromTables(tb)).Detect(c.CaseUtterances(testCase))
	require.NoError(t, err)
	assert.Equal(t, []string{"900__0_000", "900__0_003"}, got)
}

func TestDetector_NoChiefIntroduction(t *testing.T) {
	tb := testTables()
	c := buildCorpus(t, testCase, "900", []line{
		rbg("0_000"),
		adv("0_001"),
	})

	got, err := NewDetector(speaker.FromTables(tb)).Detect(c.CaseUtterances(testCase))
	require.NoError(t, err)
	assert.Equal(t, []string{"900__0_000"}, got, "the justice opening is closed when the advocate is seeded")
}

func TestDetector_EmptyCase(t *testing.T) {
	got, err := NewDetector(speaker.FromTables(testTables())).Detect(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDetector_BadID(t *testing.T) {
	_, err := NewDetector(speaker.FromTables(testTables())).Detect([]transcript.Utterance{{ID: "broken"}})
	assert.ErrorIs(t, err, transcript.ErrBadID)
}

func TestMachine_Transitions(t *testing.T) {
	tb := testTables()
	c := buildCorpus(t, testCase, "900", simpleArgument())
	utts := c.CaseUtterances(testCase)
	m := NewMachine(speaker.FromTables(tb))

	steps := []struct {
		state         State
		first, second string
	}{
		{NoOpenChunk, "", ""},
		{OneSpeakerSeeded, smith, ""},
		{TwoSpeakersSeeded, smith, ginsburg},
		{TwoSpeakersSeeded, smith, ginsburg},
		{TwoSpeakersSeeded, smith, ginsburg},
		{NoOpenChunk, "", ""},
		{OneSpeakerSeeded, jones, ""},
	}
	require.Len(t, utts, len(steps))
	for i, u := range utts {
		require.NoError(t, m.Step(u))
		first, second := m.Speakers()
		assert.Equal(t, steps[i].state, m.State(), "after %s", u.ID)
		assert.Equal(t, steps[i].first, first, "after %s", u.ID)
		assert.Equal(t, steps[i].second, second, "after %s", u.ID)
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "no-open-chunk", NoOpenChunk.String())
	assert.Equal(t, "two-speakers-seeded", TwoSpeakersSeeded.String())
}
