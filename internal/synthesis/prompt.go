package synthesis

import "strings"

// systemInstruction is the fixed system prompt describing the required
// output shape and clinical-summary guidelines.
const systemInstruction = `
You are MediSynth AI, an advanced medical intelligence assistant.
Your goal is to synthesize patient data into a coherent medical summary AND extract a chronological timeline of events.

Input: Medical documents (images/text).
Output: JSON object containing a 'summary' (Markdown) and a 'timeline' (Array).

Guidelines for Summary:
1. Sections: Demographics, History, Key Findings (highlight abnormalities), Diagnosis/Impressions, Plan.
2. Tone: Professional, clinical.
3. No PII unless explicitly in docs.
4. Format: Clean Markdown.

Guidelines for Timeline:
1. Extract every distinct event with a date (Consultations, Labs, Procedures, Med changes).
2. If date is inexact, use best approximation or "Undated".
3. Categorize accurately.
`

// trailingInstruction is the single text segment appended after all
// attachments.
const trailingInstruction = "Analyze the documents. Generate a structured JSON response with a Markdown summary and a patient timeline."

const terminologyGuideline = "Use strict SNOMED CT and ICD-10 terminology wherever a standard code or term exists."

const redactionGuideline = "Aggressively redact personally identifying information: mask all patient names and exact dates of birth in the summary and timeline."

// buildSystemInstruction appends the settings-driven guideline lines to
// the fixed system prompt.
func buildSystemInstruction(enhancedTerminology, piiRedaction bool) string {
	if !enhancedTerminology && !piiRedaction {
		return systemInstruction
	}
	var b strings.Builder
	b.WriteString(systemInstruction)
	b.WriteString("\nAdditional requirements:\n")
	if enhancedTerminology {
		b.WriteString("- " + terminologyGuideline + "\n")
	}
	if piiRedaction {
		b.WriteString("- " + redactionGuideline + "\n")
	}
	return b.String()
}
