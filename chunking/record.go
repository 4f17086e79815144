package chunking

import "github.com/maastricht-university/oralargs/reference"

// Record is one validated advocate/justice exchange. It is written as one
// JSON object per line of a case's chunk file.
type Record struct {
	CaseID       string `json:"case_id"`
	CaseYear     int    `json:"case_year"`
	JusticeName  string `json:"justice_name"`
	AdvocateName string `json:"advocate_name"`
	UttIDFirst   string `json:"utt_id_first"`
	UttIDLast    string `json:"utt_id_last"`

	AdvocateGender reference.Gender `json:"advocate_gender"`

	NumUtts        int `json:"num_utts"`
	NumUttsAdv     int `json:"num_utts_adv"`
	NumUttsJustice int `json:"num_utts_justice"`
	NumToksTotal   int `json:"num_toks_total"`
	NumToksAdv     int `json:"num_toks_adv"`
	NumToksJustice int `json:"num_toks_justice"`

	AdvocateIdeology reference.Ideology `json:"advocate_ideology"`
	JusticeIdeology  reference.Ideology `json:"justice_ideology"`
	AdvExperienceInt int                `json:"adv_experience_int"`
	AdvExperienceBin int                `json:"adv_experience_bin"`
	FemaleIssue      int                `json:"female_issue"`

	NumAdvUttsInterrupted     int     `json:"num_adv_utts_interrupted"`
	NumJusticeUttsInterrupted int     `json:"num_justice_utts_interrupted"`
	AdvInterruptionRate       float64 `json:"adv_interruption_rate"`
	JusticeInterruptionRate   float64 `json:"justice_interruption_rate"`
	NumAdvDisfl               int     `json:"num_adv_disfl"`
	NumJusticeDisfl           int     `json:"num_justice_disfl"`

	NumAdvToksInUttsInterrupted     int `json:"num_adv_toks_in_utts_interrupted"`
	NumJusticeToksInUttsInterrupted int `json:"num_justice_toks_in_utts_interrupted"`
}
