// Copyright Draftwise Labs, 2026. All rights reserved.

package evidence

import (
	"bytes"
	"text/template"
)

// intentSystem frames the intent analysis call.
const intentSystem = `You analyze a writer's draft and summarize their intent. Respond with a single JSON object and no text outside it.`

// intentPromptTmpl asks the model for a structured summary of the draft.
var intentPromptTmpl = template.Must(template.New("intent").Parse(`Analyze the following draft and identify:
- main_argument: the central claim in one sentence
- key_topics: the subjects covered (array of strings)
- evidence_needs: the kinds of supporting evidence that would strengthen the argument (array of strings)
- gaps: weak or unsupported points (array of strings)
- audience: who the draft is written for, in a few words

Respond with a JSON object containing exactly those fields.

Example response:
{"main_argument": "Remote work improves retention.", "key_topics": ["remote work", "retention"], "evidence_needs": ["turnover statistics"], "gaps": ["no cost analysis"], "audience": "HR leaders"}

Draft:
{{.Draft}}
`))

// extractionSystem frames the candidate extraction call.
const extractionSystem = `You extract quotable statements and numeric statistics from source documents. Respond with a single JSON object and no text outside it.`

// extractionPromptTmpl asks the model for statistics and quotes with provenance.
var extractionPromptTmpl = template.Must(template.New("extraction").Parse(`Scan the following source document and extract:
- statistics: numeric findings (percentages, amounts, counts, comparisons)
- quotes: notable quotable statements

For each item provide:
- text: the exact statement or figure, preserving original language
- context: the 2-3 sentences surrounding it
- source: the speaker or cited origin if the document names one, otherwise ""
- position: the approximate location ("beginning", "middle", "end")

Respond with a JSON object: {"statistics": [...], "quotes": [...]}.

Example response:
{"statistics": [{"text": "42% of respondents reported burnout", "context": "The survey covered 2,000 workers. 42% of respondents reported burnout. Rates were highest in healthcare.", "source": "2025 workforce survey", "position": "middle"}], "quotes": []}

Source document:
{{.Source}}
`))

// scoringSystem frames the per-candidate relevance call.
const scoringSystem = `You rate how well a piece of evidence supports a writer's argument. Respond with a single JSON object and no text outside it.`

// scoringPromptTmpl asks for a 0.0-1.0 relevance rating of one candidate.
var scoringPromptTmpl = template.Must(template.New("scoring").Parse(`The writer's argument: {{.Argument}}
Key topics: {{.Topics}}
Evidence needs: {{.Needs}}

Candidate {{.Kind}}:
"{{.Text}}"
Context: {{.Context}}

Rate the candidate's relevance to the writer's argument from 0.0 (unrelated) to 1.0 (directly supporting), and give a one-sentence reason.

Respond with a JSON object: {"score": <0.0-1.0>, "reason": "<sentence>"}.
`))

// recommendationSystem frames the integration guidance call.
const recommendationSystem = `You are a writing assistant. Give concise, practical guidance on weaving evidence into a draft.`

// recommendationPromptTmpl asks for integration guidance over the retained evidence.
var recommendationPromptTmpl = template.Must(template.New("recommendation").Parse(`The writer's draft:
{{.Draft}}

Evidence retained for the draft:
{{range .Items}}- [{{.Kind}}, relevance {{printf "%.2f" .RelevanceScore}}] {{.Text}}
{{end}}
For each item, suggest where in the draft it fits and how to introduce it (paraphrase vs. direct quote, attribution). Keep the whole answer under 250 words.
`))

// render executes a prompt template against data.
func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
