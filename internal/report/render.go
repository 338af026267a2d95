package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"listen-repeat/internal/align"
	"listen-repeat/internal/i18n"
)

const ruleWidth = 60

// Diff раскрашивает эталон по участкам: совпадения как есть, замены и
// пропуски - символы эталона, вставки - лишние символы распознанного текста.
func Diff(r align.Result, st Styles) string {
	var b strings.Builder
	for _, s := range r.Spans {
		switch s.Tag {
		case align.Equal:
			b.WriteString(st.Equal.Render(s.A))
		case align.Replace:
			b.WriteString(st.Replace.Render(s.A))
		case align.Delete:
			b.WriteString(st.Delete.Render(s.A))
		case align.Insert:
			b.WriteString(st.Insert.Render(s.B))
		}
	}
	return b.String()
}

// Render печатает итог: среднюю точность и по каждой фразе похожесть,
// эталон, распознанный текст и разницу.
func Render(w io.Writer, r Report, st Styles) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, st.Dim.Render(strings.Repeat("=", ruleWidth)))
	fmt.Fprintln(bw, st.Title.Render(i18n.T("report_title")))
	fmt.Fprintln(bw, st.Score.Render(i18n.Tf("report_average", r.Score)))
	fmt.Fprintln(bw)

	for _, a := range r.Attempts {
		fmt.Fprintf(bw, "%02d. %s: %s %s\n",
			a.Prompt.Index,
			i18n.T("report_similarity"),
			st.Score.Render(fmt.Sprintf("%.1f%%", a.Similarity()*100)),
			st.Dim.Render(fmt.Sprintf("(%s %.1f%%)", i18n.T("report_phonetic"), a.Phonetic*100)),
		)
		fmt.Fprintf(bw, "     %s: %s\n", label(st, "report_reference"), a.Prompt.Text)
		fmt.Fprintf(bw, "     %s: %s\n", label(st, "report_recorded"), a.Transcript)
		fmt.Fprintf(bw, "     %s: %s\n", label(st, "report_difference"), Diff(a.Alignment, st))
	}

	return bw.Flush()
}

// label выравнивает подписи по ширине самой длинной.
func label(st Styles, key string) string {
	width := 0
	for _, k := range []string{"report_reference", "report_recorded", "report_difference"} {
		width = max(width, len([]rune(i18n.T(k))))
	}
	return st.Label.Render(fmt.Sprintf("%-*s", width, i18n.T(key)))
}
