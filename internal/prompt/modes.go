package prompt

import (
	"fmt"
	"strings"

	"kurazhelp-be/internal/constant"
)

// Mode selects which task instructions and content-composition rule apply to
// an assistant request.
type Mode string

const (
	ModeChat           Mode = "chat"
	ModeSummarizer     Mode = "summarizer"
	ModeTranslator     Mode = "translator"
	ModeFAQ            Mode = "faq"
	ModeGrammarCorrect Mode = "grammar_correct"
	ModeCodeGenerate   Mode = "code_generate"
	ModeCodeExplain    Mode = "code_explain"
	ModeCopyEdit       Mode = "copy_edit"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	_, ok := modeTable[m]
	return ok
}

// composer turns the active document text and the literal user message into
// the system instruction and outbound user content for one mode. Composers
// are pure so each mode can be tested without the network layer.
type composer func(documentText, message string) (systemInstruction, userContent string)

var modeTable = map[Mode]composer{
	ModeChat:           composeChat,
	ModeSummarizer:     composeSummarizer,
	ModeTranslator:     composeTranslator,
	ModeFAQ:            composeFAQ,
	ModeGrammarCorrect: composeGrammarCorrect,
	ModeCodeGenerate:   composeCodeGenerate,
	ModeCodeExplain:    composeCodeExplain,
	ModeCopyEdit:       composeCopyEdit,
}

// Build assembles the mode-specific system instruction and templated user
// content. Unknown modes fall back to chat. The returned userContent may be
// empty; the caller decides whether an empty payload is worth a network call.
func Build(mode Mode, documentText, message string) (systemInstruction, userContent string) {
	compose, ok := modeTable[mode]
	if !ok {
		compose = composeChat
	}
	return compose(documentText, message)
}

func docOrMessage(documentText, message string) string {
	if strings.TrimSpace(documentText) != "" {
		return documentText
	}
	return message
}

func composeChat(_, message string) (string, string) {
	return "You are a helpful writing assistant. You may answer questions about KurazTech and KurazHelp AI Docs using the product context provided.",
		message
}

func composeSummarizer(documentText, message string) (string, string) {
	system := "Summarize the provided text. Produce a concise summary in Markdown, preserving the key points and structure of the original."
	content := docOrMessage(documentText, message)
	if strings.TrimSpace(documentText) != "" && strings.TrimSpace(message) != "" {
		content = fmt.Sprintf("%s\n\nRefine the summary as follows: %s", documentText, message)
	}
	return system, content
}

func composeTranslator(documentText, message string) (string, string) {
	target := strings.TrimSpace(message)
	if target == "" || strings.EqualFold(target, constant.CommandTranslate) {
		target = "English"
	}
	system := fmt.Sprintf("Translate the provided text into %s. Return only the translation, keeping the original Markdown formatting.", target)
	return system, docOrMessage(documentText, message)
}

func composeFAQ(documentText, message string) (string, string) {
	system := "Generate a list of frequently asked questions with answers about the provided text. Format each entry as a bold question followed by its answer in Markdown."
	content := documentText
	if strings.TrimSpace(content) == "" {
		content = constant.DomainBriefing
	}
	if strings.TrimSpace(message) != "" {
		content = fmt.Sprintf("%s\n\nFocus the questions on: %s", content, message)
	}
	return system, content
}

func composeGrammarCorrect(documentText, message string) (string, string) {
	return "Correct the grammar, spelling, and punctuation of the provided text. Return the corrected text only, keeping the original Markdown formatting and wording wherever it is already correct.",
		docOrMessage(documentText, message)
}

func composeCodeGenerate(_, message string) (string, string) {
	return "Generate code for the request. Return the code in a fenced Markdown code block with a short explanation after it.",
		message
}

func composeCodeExplain(_, message string) (string, string) {
	content := ""
	if strings.TrimSpace(message) != "" {
		content = fmt.Sprintf("Explain the following code:\n\n```\n%s\n```", message)
	}
	return "Explain what the provided code does, step by step, in plain language. Mention any bugs or pitfalls you notice.",
		content
}

func composeCopyEdit(documentText, message string) (string, string) {
	system := "Copy edit the provided text for clarity, tone, and flow. Return the edited text only, keeping the original Markdown formatting."
	content := docOrMessage(documentText, message)
	trimmed := strings.TrimSpace(message)
	if strings.TrimSpace(documentText) != "" && trimmed != "" && !strings.EqualFold(trimmed, constant.CommandCopyEdit) {
		content = fmt.Sprintf("%s\n\nEditing instruction: %s", documentText, message)
	}
	return system, content
}
