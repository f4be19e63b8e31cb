package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/cybercompass/internal/contract"
	"github.com/huangsam/cybercompass/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDossierResults outputs a dossier, dispatching on the configured format.
func WriteDossierResults(d schema.Dossier, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg, func(w io.Writer) error {
			return writeJSON(w, d)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg, func(w io.Writer) error {
			return writeDossierCSV(w, d, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg, func(w io.Writer) error {
			return writeDossierText(w, d, cfg, fmtFloat)
		}, "Wrote dossier")
	}
	return nil
}

// writeDossierCSV writes one row per category.
func writeDossierCSV(w io.Writer, d schema.Dossier, fmtFloat func(float64) string) error {
	header := []string{
		"session_id",
		"archetype",
		"category",
		"label",
		"raw",
		"radar",
		"baseline",
		"gap",
		"severity",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range d.Categories {
			rec := []string{
				d.SessionID,
				string(d.Archetype.ID),
				string(c.Category),
				c.Label,
				fmtFloat(c.Raw),
				fmtFloat(c.Radar),
				fmtFloat(c.Baseline),
				fmtFloat(c.Gap),
				contract.GetPlainLabel(c.Gap),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDossierText writes the human-readable report.
func writeDossierText(w io.Writer, d schema.Dossier, cfg *contract.Config, fmtFloat func(float64) string) error {
	header := painter(cfg, contract.HeaderColor)
	title := "AGENT DOSSIER // " + d.Archetype.Title
	if cfg.UseEmojis {
		title = "🧭 " + title
	}

	textWidth := GetMaxTableTextWidth(cfg, 30)
	lines := []string{
		header(title),
		contract.TruncateText(d.Archetype.Description, GetTerminalWidth(cfg)),
		"",
		fmt.Sprintf("Session: %s  Path: %s  Rank: %s (%d XP)", d.SessionID, d.Path, d.Rank, d.XP),
		fmt.Sprintf("Dominant: %s (%s)  Aptitude: %s  Knowledge: %s",
			schema.CategoryLabel(d.Dominant), d.Dominant, d.Aptitude, levelName(d.KnowledgeLevel)),
		fmt.Sprintf("Work Role: %s %s", d.NistRoleID, d.WorkRole.Title),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if err := renderSection(w, header("Category Scores"), []string{"Code", "Category", "Raw", "Radar", "Baseline", "Gap", "Severity"},
		categoryRows(d, cfg, fmtFloat)); err != nil {
		return err
	}

	roleRows := make([][]string, 0, len(d.Roles))
	for _, r := range d.Roles {
		roleRows = append(roleRows, []string{string(r.Role), fmtFloat(r.MatchPct)})
	}
	if err := renderSection(w, header("Role Match"), []string{"Role", "Match %"}, roleRows); err != nil {
		return err
	}

	certRows := make([][]string, 0, len(d.Certifications))
	for _, c := range d.Certifications {
		certRows = append(certRows, []string{c.Name, c.Issuer, c.Level})
	}
	if err := renderSection(w, header("Certifications"), []string{"Name", "Issuer", "Level"}, certRows); err != nil {
		return err
	}

	deployRows := make([][]string, 0, len(d.Gaps.Deployments))
	for _, dep := range d.Gaps.Deployments {
		deployRows = append(deployRows, []string{
			dep.ID, dep.Type, contract.TruncateText(dep.Title, textWidth), dep.LearningPath,
		})
	}
	if err := renderSection(w, header("Training Deployments"), []string{"ID", "Type", "Title", "Learning Path"}, deployRows); err != nil {
		return err
	}

	aresRows := make([][]string, 0, len(d.Ares))
	for _, a := range d.Ares {
		aresRows = append(aresRows, []string{a.MissionID, contract.TruncateText(a.Title, textWidth)})
	}
	if err := renderSection(w, header("Ares Missions"), []string{"Mission", "Title"}, aresRows); err != nil {
		return err
	}

	if d.Roadmap != nil {
		if err := writeRoadmap(w, d.Roadmap, cfg, fmtFloat, header); err != nil {
			return err
		}
	}

	rolesBelow := len(d.Gaps.WorkRolesBelow)
	if _, err := fmt.Fprintf(w, "Top role match %s%%, %d of %d roles below baseline, %d TKS areas below baseline\n",
		fmtFloat(d.TopRoleMatch), rolesBelow, len(d.Roles), len(d.Gaps.TKSAreasBelow)); err != nil {
		return err
	}
	if d.SalaryRange != "" {
		if _, err := fmt.Fprintf(w, "Market range for this track: %s\n", d.SalaryRange); err != nil {
			return err
		}
	}
	return nil
}

func categoryRows(d schema.Dossier, cfg *contract.Config, fmtFloat func(float64) string) [][]string {
	rows := make([][]string, 0, len(d.Categories))
	for _, c := range d.Categories {
		rows = append(rows, []string{
			string(c.Category),
			c.Label,
			fmtFloat(c.Raw),
			fmtFloat(c.Radar),
			fmtFloat(c.Baseline),
			fmtFloat(c.Gap),
			severityLabel(cfg, c.Gap),
		})
	}
	return rows
}

// writeRoadmap writes the development roadmap sections.
func writeRoadmap(w io.Writer, r *schema.Roadmap, cfg *contract.Config, fmtFloat func(float64) string, header func(...any) string) error {
	nodeRows := make([][]string, 0, len(r.NodeMap))
	for i, n := range r.NodeMap {
		nodeRows = append(nodeRows, []string{strconv.Itoa(i + 1), n.ID, n.Type, n.Summary})
	}
	if err := renderSection(w, header("Roadmap Node Map"), []string{"Step", "Mission", "Type", "Summary"}, nodeRows); err != nil {
		return err
	}

	gapRows := make([][]string, 0, len(r.TopGaps))
	for _, g := range r.TopGaps {
		objective := ""
		if len(g.Objectives) > 0 {
			objective = contract.TruncateText(g.Objectives[0], GetMaxTableTextWidth(cfg, 45))
		}
		gapRows = append(gapRows, []string{g.Label, fmtFloat(g.Size), severityLabel(cfg, g.Size), objective})
	}
	if err := renderSection(w, header("Priority Gaps"), []string{"Category", "Gap", "Severity", "First Objective"}, gapRows); err != nil {
		return err
	}

	credRows := make([][]string, 0, len(r.Credentials))
	for _, c := range r.Credentials {
		credRows = append(credRows, []string{c.Name, c.Issuer})
	}
	return renderSection(w, header("Credential Mapping"), []string{"Credential", "Issuer"}, credRows)
}

// renderSection writes a title and a table. Empty sections are skipped.
func renderSection(w io.Writer, title string, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
