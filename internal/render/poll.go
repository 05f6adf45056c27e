package render

import (
	"fmt"
	"strconv"
	"strings"

	"post2embed/internal/domain"
	"post2embed/pkg/formatter"
)

// renderPoll emits a separator rule followed by one label/meter pair per
// option, in declared order. Percentages round to one decimal place; a poll
// with zero total votes renders every option at 0 rather than dividing by
// zero.
func (a *Assembler) renderPoll(poll *domain.Poll) string {
	var sb strings.Builder
	sb.WriteString(`<hr class="social-embed-hr">`)

	for i, opt := range poll.Options {
		fmt.Fprintf(&sb,
			`<label for="poll_%d">%s: (%s)</label><br>`+
				`<meter class="social-embed-meter" id="poll_%d" min="0" max="100" low="33" high="66" value="%s">%d</meter><br>`,
			i, opt.Label, formatter.Number(a.locale, opt.Votes),
			i, percent(opt.Votes, poll.TotalVotes), opt.Votes)
	}

	return sb.String()
}

// percent formats votes/total*100 to one decimal place, with "0" for an
// empty poll.
func percent(votes, total int) string {
	if total <= 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(votes)/float64(total)*100, 'f', 1, 64)
}
