package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"PennyRadar/internal/model"
)

// NoCandidatesMessage is sent whenever a run produced an empty table.
const NoCandidatesMessage = "**Penny Scan Alert**\nNo candidates today."

// FormatDigest renders the top ranked candidates as the webhook digest. The
// table must already be ranked; only the first topN rows appear.
func FormatDigest(records []model.Candidate, topN int) string {
	if len(records) == 0 {
		return NoCandidatesMessage
	}
	if len(records) > topN {
		records = records[:topN]
	}

	var b strings.Builder
	b.WriteString("**Penny Scan Alert**")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("\n\n**%s**  $%s | Entry %s | Stop %s | T1 %s | T2 %s | Vol× %s | Chg %s%% | News48h %s",
			r.Ticker,
			floatStr(r.LastPrice),
			floatStr(r.Plan.Entry),
			floatStr(r.Plan.Stop),
			floatStr(r.Plan.Target1),
			floatStr(r.Plan.Target2),
			floatStr(r.VolRatio),
			floatStr(r.PctChange),
			r.RecentNews,
		))
	}
	return b.String()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
