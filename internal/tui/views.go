package tui

import (
	"fmt"
	"strings"
)

// renderLoading renders the placeholder shown while the session
// resolves.
func (m Model) renderLoading() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Nomanion Admin"))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View())
	b.WriteString(m.styles.Muted.Render(" Checking your session..."))
	b.WriteString("\n")

	return b.String()
}

// renderLogin renders the credential form.
func (m Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Nomanion Admin"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Sign in to continue"))
	b.WriteString("\n\n")

	if m.login.submitting {
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" Working..."))
		b.WriteString("\n")
	} else if m.login.form != nil {
		b.WriteString(m.login.form.View())
	}

	if m.lastError != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.lastError))
		b.WriteString("\n")
	}

	return b.String()
}

// renderMenu renders the dashboard landing menu.
func (m Model) renderMenu() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Nomanion Admin"))
	b.WriteString("\n")

	if m.state.User != nil {
		who := fmt.Sprintf("%s (%s)", m.state.User.Email, m.state.User.Role)
		if !m.state.Confirmed {
			who += " · offline"
		}
		b.WriteString(m.styles.Subtitle.Render(who))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var menu strings.Builder
	for i, entry := range menuEntries {
		if i == m.menuIndex {
			menu.WriteString(m.styles.Selected.Render("> " + entry.label))
		} else {
			menu.WriteString("  " + entry.label)
		}
		menu.WriteString("\n")
	}
	b.WriteString(m.styles.Border.Render(strings.TrimRight(menu.String(), "\n")))
	b.WriteString("\n")

	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render(m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ move · enter open · l logout · q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderItineraries renders the draft itinerary list.
func (m Model) renderItineraries() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Draft Itineraries"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.itineraries) == 0 {
		b.WriteString(m.styles.Muted.Render("No drafts waiting."))
		b.WriteString("\n")
	}

	for i, it := range m.itineraries {
		author := ""
		if it.Author != nil {
			author = it.Author.FullName
		}
		line := fmt.Sprintf("%-40s %-20s %s", truncate(it.Title, 40), truncate(author, 20), it.Status)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderListFooter())
	return b.String()
}

// renderUsers renders the nomad or explorer account list.
func (m Model) renderUsers() string {
	var b strings.Builder

	title := "Nomads"
	if m.currentView == ViewExplorers {
		title = "Explorers"
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.users) == 0 {
		b.WriteString(m.styles.Muted.Render("Nobody here yet."))
		b.WriteString("\n")
	}

	for i, u := range m.users {
		line := fmt.Sprintf("%-30s %-35s %s", truncate(u.FullName, 30), truncate(u.Email, 35), u.Role)
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderListFooter())
	return b.String()
}

// renderReviews renders the pending moderation queue.
func (m Model) renderReviews() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Pending Reviews"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	if len(m.reviews) == 0 {
		b.WriteString(m.styles.Success.Render("Queue is clear."))
		b.WriteString("\n")
	}

	for i, r := range m.reviews {
		author := ""
		if r.Author != nil {
			author = r.Author.FullName
		}
		line := fmt.Sprintf("%-20s %d★  %s", truncate(author, 20), r.Rating, truncate(r.Comment, 50))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.lastError) + "\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ move · a approve · r refresh · esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderStats renders the statistics snapshot.
func (m Model) renderStats() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Platform Statistics"))
	b.WriteString("\n\n")

	if m.loading || m.stats == nil {
		b.WriteString(m.spinner.View() + m.styles.Muted.Render(" Loading..."))
		b.WriteString("\n")
		return b.String()
	}

	s := m.stats
	rows := []struct {
		label string
		value int
	}{
		{"Users", s.TotalUsers},
		{"Nomads", s.TotalNomads},
		{"Explorers", s.TotalExplorers},
		{"Itineraries", s.TotalItineraries},
		{"Published", s.PublishedItineraries},
		{"Drafts", s.DraftItineraries},
		{"Pending reviews", s.PendingReviews},
		{"Active subscriptions", s.ActiveSubscriptions},
	}

	var box strings.Builder
	for _, row := range rows {
		box.WriteString(fmt.Sprintf("%-22s %s\n", row.label, m.styles.Status.Render(fmt.Sprintf("%d", row.value))))
	}
	b.WriteString(m.styles.Border.Render(strings.TrimRight(box.String(), "\n")))
	b.WriteString("\n")

	b.WriteString(m.styles.Help.Render("r refresh · esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderListFooter renders the shared pagination and key help line.
func (m Model) renderListFooter() string {
	var b strings.Builder

	if m.lastError != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.lastError) + "\n")
	}

	if m.page != nil && m.page.TotalPages > 1 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("\nPage %d of %d (%d total)", m.pageNum, m.page.TotalPages, m.page.Total)))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ move · n/p page · r refresh · esc back · q quit"))
	b.WriteString("\n")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
