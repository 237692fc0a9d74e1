// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"

	"github.com/danielhkuo/quickly-meet/models"
)

// ByDate counts, for every candidate date, how many votes selected it.
//
// Every candidate gets a row, zero counts included. Rows are ordered by
// count descending; equal counts keep candidate order. A vote that lists
// a date twice counts once. Selected dates that are not candidates are
// ignored here.
func ByDate(poll models.Poll) []models.TallyRow {
	counts := voteCounts(poll.Votes)

	rows := make([]models.TallyRow, 0, len(poll.Dates))
	for _, date := range poll.Dates {
		rows = append(rows, models.TallyRow{Date: date, Count: counts[date]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows
}

// VoterSummaries returns each vote verbatim in append order
func VoterSummaries(poll models.Poll) []models.Vote {
	summaries := make([]models.Vote, 0, len(poll.Votes))
	for _, v := range poll.Votes {
		selected := make([]string, len(v.SelectedDates))
		copy(selected, v.SelectedDates)
		summaries = append(summaries, models.Vote{Voter: v.Voter, SelectedDates: selected})
	}
	return summaries
}

// DateVotes builds the date-votes report: every date that received at
// least one vote, candidate or not, with the poll title on each row.
// Ordered by count descending; ties keep candidate order, then the
// order in which non-candidate dates were first seen.
func DateVotes(poll models.Poll) []models.DateVoteCount {
	counts := voteCounts(poll.Votes)

	order := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, date := range poll.Dates {
		if !seen[date] {
			seen[date] = true
			order = append(order, date)
		}
	}
	for _, v := range poll.Votes {
		for _, date := range v.SelectedDates {
			if !seen[date] {
				seen[date] = true
				order = append(order, date)
			}
		}
	}

	rows := make([]models.DateVoteCount, 0, len(order))
	for _, date := range order {
		if counts[date] == 0 {
			continue
		}
		rows = append(rows, models.DateVoteCount{
			PollTitle: poll.Title,
			Date:      date,
			VoteCount: counts[date],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].VoteCount > rows[j].VoteCount
	})
	return rows
}

// Results bundles the tally and voter list shown on the results page
func Results(poll models.Poll) models.PollResults {
	return models.PollResults{
		PollID:     poll.ID,
		Title:      poll.Title,
		Tally:      ByDate(poll),
		Voters:     VoterSummaries(poll),
		TotalVotes: len(poll.Votes),
	}
}

// voteCounts maps each date to the number of votes that selected it
func voteCounts(votes []models.Vote) map[string]int {
	counts := make(map[string]int)
	for _, v := range votes {
		counted := make(map[string]bool, len(v.SelectedDates))
		for _, date := range v.SelectedDates {
			if counted[date] {
				continue
			}
			counted[date] = true
			counts[date]++
		}
	}
	return counts
}
