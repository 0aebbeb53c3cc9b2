package notifier

import (
	"fmt"
	"strings"

	"BreakoutSentinel/internal/model"
)

// FormatBreakoutAlert renders a breakout signal as a Telegram Markdown
// message. Both tiers carry the same fields; only the header differs.
func FormatBreakoutAlert(sig *model.BreakoutSignal) string {
	var b strings.Builder

	if sig.Tier == model.TierStrong {
		b.WriteString("🔥 *STRONG BREAKOUT*\n\n")
	} else {
		b.WriteString("⚠️ *NORMAL BREAKOUT*\n\n")
	}
	b.WriteString(fmt.Sprintf("*Pair:* `%s`\n", sig.Symbol))
	b.WriteString(fmt.Sprintf("*Close:* `%g`\n", sig.Close))
	b.WriteString(fmt.Sprintf("*RSI:* `%.2f`\n", sig.RSI))
	b.WriteString(fmt.Sprintf("*Volume:* `%.2f`\n", sig.Volume))
	b.WriteString(fmt.Sprintf("*Base Range:* `%.2f%%`\n", sig.BaseRangePct))
	b.WriteString(fmt.Sprintf("*Candle Body:* `%.2f%%`", sig.BodyPct))

	return b.String()
}
