// Package report renders ranked candidates for people and for downstream tools.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spigell/resume-screener/internal/screening"
)

// Header is the column order used by CSV and table output.
var Header = []string{
	"Rank",
	"Name",
	"Email",
	"Phone",
	"Matched Skills",
	"Missing Skills",
	"Years Experience",
	"Skill Match %",
	"Experience Match %",
	"Final Score",
	"Recommendation",
	"Parse Status",
	"Source",
}

// Row is a flattened, ranked candidate.
type Row struct {
	Rank                   int     `json:"rank"`
	Name                   string  `json:"name"`
	Email                  string  `json:"email"`
	Phone                  string  `json:"phone"`
	MatchedSkills          string  `json:"matched_skills"`
	MissingSkills          string  `json:"missing_skills"`
	YearsExperience        float64 `json:"years_experience"`
	SkillMatchPercent      int     `json:"skill_match_percent"`
	ExperienceMatchPercent int     `json:"experience_match_percent"`
	FinalScore             int     `json:"final_score"`
	Recommendation         string  `json:"recommendation"`
	ParseStatus            string  `json:"parse_status"`
	Source                 string  `json:"source"`

	// DisplayName is the name shown in tables and menus.
	DisplayName string `json:"-"`
}

// Summary holds the batch analytics shown above the table.
type Summary struct {
	Total        int     `json:"total"`
	StrongHires  int     `json:"strong_hires"`
	Interviews   int     `json:"interviews"`
	Rejects      int     `json:"rejects"`
	Failed       int     `json:"failed"`
	AverageScore float64 `json:"average_score"`
}

// Rows flattens candidates in the order given, numbering them from 1.
func Rows(candidates []*screening.Candidate) []Row {
	rows := make([]Row, 0, len(candidates))
	for idx, c := range candidates {
		rows = append(rows, Row{
			Rank:                   idx + 1,
			Name:                   c.Name,
			Email:                  c.Email,
			Phone:                  c.Phone.Display,
			MatchedSkills:          strings.Join(c.Skills, ", "),
			MissingSkills:          strings.Join(c.MissingSkills, ", "),
			YearsExperience:        c.YearsExperience,
			SkillMatchPercent:      c.SkillMatchPercent,
			ExperienceMatchPercent: c.ExperienceMatchPercent,
			FinalScore:             c.FinalScore(),
			Recommendation:         string(c.Recommendation()),
			ParseStatus:            string(c.ParseStatus),
			Source:                 c.SourceName,
			DisplayName:            c.DisplayName(),
		})
	}
	return rows
}

// Summarize computes the counts per tier and the average score rounded to one decimal.
func Summarize(candidates []*screening.Candidate) Summary {
	s := Summary{Total: len(candidates)}
	if len(candidates) == 0 {
		return s
	}

	total := 0
	for _, c := range candidates {
		total += c.FinalScore()
		switch c.Recommendation() {
		case screening.StrongHire:
			s.StrongHires++
		case screening.Interview:
			s.Interviews++
		default:
			s.Rejects++
		}
		if c.ParseStatus == screening.ParseFailed {
			s.Failed++
		}
	}

	s.AverageScore = math.Round(float64(total)/float64(len(candidates))*10) / 10
	return s
}

func (r Row) record() []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.Name,
		r.Email,
		r.Phone,
		r.MatchedSkills,
		r.MissingSkills,
		formatYears(r.YearsExperience),
		strconv.Itoa(r.SkillMatchPercent),
		strconv.Itoa(r.ExperienceMatchPercent),
		strconv.Itoa(r.FinalScore),
		r.Recommendation,
		r.ParseStatus,
		r.Source,
	}
}

// WriteCSV writes the header and one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile creates or truncates path and writes the rows to it.
func WriteCSVFile(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, rows); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return file.Close()
}

type document struct {
	Job        string  `json:"job"`
	Summary    Summary `json:"summary"`
	Candidates []Row   `json:"candidates"`
}

// WriteJSON writes the summary and rows as one indented document.
func WriteJSON(w io.Writer, job string, summary Summary, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Job: job, Summary: summary, Candidates: rows})
}

// WriteJSONFile creates or truncates path and writes the JSON document to it.
func WriteJSONFile(path, job string, summary Summary, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, job, summary, rows); err != nil {
		return fmt.Errorf("write json %s: %w", path, err)
	}
	return file.Close()
}

// DumpToTmpFile writes the JSON document to a new temporary file and returns its name.
func DumpToTmpFile(job string, summary Summary, rows []Row) (string, error) {
	file, err := os.CreateTemp("", "screening_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteJSON(file, job, summary, rows); err != nil {
		return "", err
	}
	return file.Name(), file.Close()
}

// WriteTable prints the summary followed by an aligned table of the main columns.
func WriteTable(w io.Writer, summary Summary, rows []Row) error {
	fmt.Fprintf(w, "Total candidates: %d | Strong hires: %d | Interviews: %d | Rejects: %d | Failed: %d | Average score: %.1f\n\n",
		summary.Total, summary.StrongHires, summary.Interviews, summary.Rejects, summary.Failed, summary.AverageScore)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tName\tScore\tSkill %\tExp %\tYears\tRecommendation\tStatus\tEmail")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
			r.Rank, r.DisplayName, r.FinalScore, r.SkillMatchPercent, r.ExperienceMatchPercent,
			formatYears(r.YearsExperience), r.Recommendation, r.ParseStatus, orDash(r.Email))
	}
	return tw.Flush()
}

// Details renders a single candidate the way the interactive view shows it.
func Details(r Row) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - %d%% (%s)\n", r.DisplayName, r.FinalScore, r.Recommendation)
	fmt.Fprintf(&sb, "  Source:         %s\n", r.Source)
	fmt.Fprintf(&sb, "  Parse status:   %s\n", r.ParseStatus)
	fmt.Fprintf(&sb, "  Email:          %s\n", orDash(r.Email))
	fmt.Fprintf(&sb, "  Phone:          %s\n", orDash(r.Phone))
	fmt.Fprintf(&sb, "  Experience:     %s years (%d%% of minimum)\n", formatYears(r.YearsExperience), r.ExperienceMatchPercent)
	fmt.Fprintf(&sb, "  Skill match:    %d%%\n", r.SkillMatchPercent)
	fmt.Fprintf(&sb, "  Matched skills: %s\n", orValue(r.MatchedSkills, "None"))
	fmt.Fprintf(&sb, "  Missing skills: %s\n", orValue(r.MissingSkills, "All required skills matched"))
	return sb.String()
}

// Label is the one-line form used in selection lists.
func Label(r Row) string {
	return fmt.Sprintf("%d. %s / %d / %s", r.Rank, r.DisplayName, r.FinalScore, r.Recommendation)
}

func formatYears(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string { return orValue(s, "-") }

func orValue(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
