package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/export"
	"github.com/alexanderramin/sitemap/internal/i18n"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "SITE", "STATUS", "UPDATED"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.ShortID
		if strings.TrimSpace(id) == "" {
			id = TruncID(p.ID)
		}

		site := Dim("--")
		if p.Site != "" {
			site = StyleFg.Render(p.Site)
		}

		rows = append(rows, []string{
			id,
			Bold(p.Name),
			site,
			StatusPill(p.Status),
			Dim(HumanTimestamp(p.UpdatedAt)),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatFloorList renders a project's floors with per-floor tallies.
func FormatFloorList(p *domain.Project, floors []*domain.Floor) string {
	headers := []string{"#", "FLOOR", "IMAGE", "DEVICES", "CABLES", "INSTALLED"}
	rows := make([][]string, 0, len(floors))

	for i, s := range export.Summarize(floors) {
		f := floors[i]
		image := Dim("--")
		if f.ImageURI != "" {
			image = f.ImageURI
			if f.ImageWidth > 0 && f.ImageHeight > 0 {
				image += Dim(fmt.Sprintf(" %dx%d", f.ImageWidth, f.ImageHeight))
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			Bold(s.Floor),
			image,
			fmt.Sprintf("%d", s.Devices),
			fmt.Sprintf("%d", s.Cables),
			InstallProgress(s.ByStatus[domain.StatusInstalled], s.Devices+s.Cables, 10),
		})
	}

	title := "Floors"
	if p != nil {
		title = p.DisplayID() + " floors"
	}
	return RenderBox(title, RenderTable(headers, rows))
}

// FormatDeviceList renders the devices of one floor. Devices inside a rack
// show the rack's short id.
func FormatDeviceList(floor *domain.Floor) string {
	if len(floor.Scene.Nodes) == 0 {
		return RenderBox(floor.Name, Dim("No devices placed."))
	}
	headers := []string{"ID", "TYPE", "X", "Y", "RACK", "STATUS"}
	rows := make([][]string, 0, len(floor.Scene.Nodes))

	for _, n := range floor.Scene.Nodes {
		rack := Dim("--")
		if n.ParentRackID != "" {
			rack = TruncID(n.ParentRackID)
		}
		rows = append(rows, []string{
			TruncID(n.ID),
			StyleFg.Render(i18n.DeviceLabel(n.Type)),
			fmt.Sprintf("%.3f", n.X),
			fmt.Sprintf("%.3f", n.Y),
			rack,
			InstallIndicator(n.Status),
		})
	}

	return RenderBox(floor.Name, RenderTable(headers, rows))
}

// FormatCableList renders the cables of one floor with their lengths.
func FormatCableList(floor *domain.Floor) string {
	if len(floor.Scene.Cables) == 0 {
		return Dim("No cables drawn.")
	}
	unit := "units"
	if floor.ImageWidth > 0 && floor.ImageHeight > 0 {
		unit = "px"
	}
	headers := []string{"ID", "COLOR", "POINTS", "LENGTH (" + unit + ")", "STATUS"}
	rows := make([][]string, 0, len(floor.Scene.Cables))
	for _, c := range floor.Scene.Cables {
		rows = append(rows, []string{
			TruncID(c.ID),
			c.Color,
			fmt.Sprintf("%d", len(c.Points)),
			fmt.Sprintf("%.2f", export.CableLength(c, floor)),
			InstallIndicator(c.Status),
		})
	}
	return RenderTable(headers, rows)
}
