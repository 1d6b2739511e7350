package advisor

import (
	"strings"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

func receiptPrompt() string {
	var names []string
	for _, c := range core.Categories() {
		names = append(names, string(c))
	}

	return "Analyze this receipt image. Extract the merchant name, the date (YYYY-MM-DD), " +
		"and the total amount.\n" +
		"Infer the best category from this list: " + strings.Join(names, ", ") + ".\n" +
		"Output STRICT JSON only, a single object with fields " +
		`"merchant" (string), "date" (string), "amount" (number), "category" (string).` + "\n" +
		"Do NOT wrap the response in code fences or Markdown."
}

func advicePrompt(sampleJSON string) string {
	return "You are a financial advisor for a couple. Here is a JSON list of their recent " +
		"shared transactions: " + sampleJSON + ".\n" +
		"Analyze the spending habits and who pays for what.\n" +
		"Provide 3 short, punchy, and actionable bullet points of advice to improve " +
		"savings or split equity.\n" +
		"Format the output as Markdown."
}

// cleanModelJSON strips the ```json fences the model sometimes adds despite
// instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return strings.TrimSpace(strings.Trim(s, "`"))
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
