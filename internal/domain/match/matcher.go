package match

import (
	"strings"

	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/extract"
	"github.com/FACorreiaa/sedi-insider-monitor/internal/domain/roster"
)

// Confidence tiers assigned by comparing the overall score to the
// caller-supplied thresholds.
const (
	StatusLikely = "likely"
	StatusReview = "review"
	StatusLow    = "low"
)

// Thresholds partitions overall scores into confidence tiers. High is
// expected to exceed Review; that is not enforced, a misconfigured pair
// silently widens or empties the review band.
type Thresholds struct {
	High   int
	Review int
}

// DefaultThresholds mirrors the tuning the prospect research team runs with.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 90, Review: 80}
}

// Result is the best-scoring donor candidate for one transaction. Donor
// fields are empty and Score is -1 when the roster is empty.
type Result struct {
	TxID                string    `json:"tx_id" csv:"tx_id"`
	InsiderName         string    `json:"insider_name" csv:"insider_name"`
	InsiderNorm         string    `json:"insider_norm" csv:"insider_norm"`
	DonorID             string    `json:"donor_id" csv:"donor_id"`
	DonorName           string    `json:"donor_name" csv:"donor_name"`
	Score               int       `json:"score" csv:"score"`
	Status              string    `json:"status" csv:"status"`
	Issuer              string    `json:"issuer" csv:"issuer"`
	DateTx              string    `json:"date_tx" csv:"date_tx"`
	Nature              string    `json:"nature" csv:"nature"`
	Security            string    `json:"security" csv:"security"`
	QtyOrValue          string    `json:"qty_or_value" csv:"qty_or_value"`
	Breakdown           Breakdown `json:"breakdown" csv:"-"`
	UnitOrExercisePrice string    `json:"unit_or_exercise_price" csv:"unit_or_exercise_price"`
}

// donorEntry is a donor with its normalization precomputed once per run.
type donorEntry struct {
	donor       roster.Donor
	norm        string
	aliasFirsts map[string]struct{}
}

// MatchTransactions ranks every transaction against every donor and returns
// one result per transaction, in transaction order. The scan is exhaustive
// (transactions x donors); ties keep the donor appearing first in roster
// order. Rosters and weekly transaction counts are small enough that no
// blocking index is needed.
func MatchTransactions(transactions []extract.Transaction, donors []roster.Donor, titles TitleSet, nicknames Nicknames, thr Thresholds) []Result {
	entries := prepareDonors(donors, titles, nicknames)

	results := make([]Result, 0, len(transactions))
	for _, t := range transactions {
		insNorm := Normalize(t.InsiderName, titles)

		bestScore := -1
		var best *donorEntry
		var bestBreakdown Breakdown
		for i := range entries {
			s, b := scorePair(insNorm, entries[i].norm, entries[i].aliasFirsts)
			if s > bestScore {
				bestScore = s
				best = &entries[i]
				bestBreakdown = b
			}
		}

		res := Result{
			TxID:                t.TxID,
			InsiderName:         t.InsiderName,
			InsiderNorm:         insNorm,
			Score:               bestScore,
			Status:              statusFor(bestScore, thr),
			Issuer:              t.Issuer,
			DateTx:              t.DateTx,
			Nature:              t.Nature,
			Security:            t.Security,
			QtyOrValue:          t.QtyOrValue,
			Breakdown:           bestBreakdown,
			UnitOrExercisePrice: t.UnitOrExercisePrice,
		}
		if best != nil {
			res.DonorID = best.donor.DonorID
			res.DonorName = best.donor.Name
		}
		results = append(results, res)
	}
	return results
}

// prepareDonors normalizes each donor name and expands its alias first-name
// set: manual aliases (semicolon-delimited) plus nickname-table variants of
// the donor's own first name.
func prepareDonors(donors []roster.Donor, titles TitleSet, nicknames Nicknames) []donorEntry {
	entries := make([]donorEntry, len(donors))
	for i, d := range donors {
		normName := Normalize(d.Name, titles)
		first, _ := SplitFirstLast(normName)

		aliasFirsts := firstVariants(first, nicknames)
		for _, a := range strings.Split(d.Aliases, ";") {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				aliasFirsts[a] = struct{}{}
			}
		}

		entries[i] = donorEntry{donor: d, norm: normName, aliasFirsts: aliasFirsts}
	}
	return entries
}

func statusFor(score int, thr Thresholds) string {
	switch {
	case score >= thr.High:
		return StatusLikely
	case score >= thr.Review:
		return StatusReview
	default:
		return StatusLow
	}
}
