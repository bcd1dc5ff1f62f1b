// Package gemini implements the generation backend contracts using
// Google's Gemini API: structured-JSON model invocation and vision OCR
// transcription, with backend errors classified into the generation
// error kinds.
package gemini
