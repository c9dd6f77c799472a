package prompt

import (
	"strings"
	"testing"

	"kurazhelp-be/internal/constant"
)

func TestTranslatorTargetLanguage(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantTarget string
	}{
		{"explicit language", "French", "French"},
		{"command word", "translate", "English"},
		{"command word mixed case", "Translate", "English"},
		{"empty message", "", "English"},
		{"whitespace message", "   ", "English"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, _ := Build(ModeTranslator, "Bonjour le monde", tt.message)
			if !strings.Contains(system, tt.wantTarget) {
				t.Errorf("system instruction %q does not mention target %q", system, tt.wantTarget)
			}
		})
	}
}

func TestTranslatorContentFallsBackToMessage(t *testing.T) {
	_, content := Build(ModeTranslator, "", "Bonjour")
	if content != "Bonjour" {
		t.Errorf("content = %q, want message fallback", content)
	}

	_, content = Build(ModeTranslator, "Some document", "French")
	if content != "Some document" {
		t.Errorf("content = %q, want document text", content)
	}
}

func TestSummarizerComposition(t *testing.T) {
	_, content := Build(ModeSummarizer, "The document body.", "")
	if content != "The document body." {
		t.Errorf("doc only: content = %q", content)
	}

	_, content = Build(ModeSummarizer, "", "just this sentence")
	if content != "just this sentence" {
		t.Errorf("message fallback: content = %q", content)
	}

	_, content = Build(ModeSummarizer, "The document body.", "focus on dates")
	if !strings.Contains(content, "The document body.") || !strings.Contains(content, "focus on dates") {
		t.Errorf("doc+message: content = %q, want both parts", content)
	}
}

func TestFAQFallsBackToBriefing(t *testing.T) {
	_, content := Build(ModeFAQ, "", "")
	if content != constant.DomainBriefing {
		t.Errorf("empty doc: content should be the domain briefing, got %q", content)
	}

	_, content = Build(ModeFAQ, "", "pricing")
	if !strings.Contains(content, constant.DomainBriefing) || !strings.Contains(content, "pricing") {
		t.Errorf("briefing+refinement: content = %q", content)
	}
}

func TestCopyEditCommandWordIsNotAnInstruction(t *testing.T) {
	_, content := Build(ModeCopyEdit, "Doc text here.", "copy edit")
	if content != "Doc text here." {
		t.Errorf("command word should not be appended, got %q", content)
	}

	_, content = Build(ModeCopyEdit, "Doc text here.", "make it formal")
	if !strings.Contains(content, "make it formal") {
		t.Errorf("real instruction should be appended, got %q", content)
	}
}

func TestCodeModesIgnoreDocument(t *testing.T) {
	_, content := Build(ModeCodeGenerate, "Document text.", "write a quicksort in Go")
	if content != "write a quicksort in Go" {
		t.Errorf("code_generate: content = %q, want message verbatim", content)
	}

	_, content = Build(ModeCodeExplain, "Document text.", "x := y + 1")
	if !strings.Contains(content, "```\nx := y + 1\n```") {
		t.Errorf("code_explain: content = %q, want fenced code block", content)
	}
}

func TestCodeExplainEmptyMessageYieldsEmptyContent(t *testing.T) {
	_, content := Build(ModeCodeExplain, "Document text.", "   ")
	if strings.TrimSpace(content) != "" {
		t.Errorf("content = %q, want empty", content)
	}
}

func TestChatPassesMessageVerbatim(t *testing.T) {
	_, content := Build(ModeChat, "Document text.", "what is KurazTech?")
	if content != "what is KurazTech?" {
		t.Errorf("content = %q", content)
	}
}

func TestUnknownModeFallsBackToChat(t *testing.T) {
	system, content := Build(Mode("bogus"), "", "hello")
	wantSystem, wantContent := Build(ModeChat, "", "hello")
	if system != wantSystem || content != wantContent {
		t.Error("unknown mode should behave like chat")
	}
}

func TestValid(t *testing.T) {
	for _, m := range []Mode{ModeChat, ModeSummarizer, ModeTranslator, ModeFAQ, ModeGrammarCorrect, ModeCodeGenerate, ModeCodeExplain, ModeCopyEdit} {
		if !m.Valid() {
			t.Errorf("mode %q should be valid", m)
		}
	}
	if Mode("bogus").Valid() {
		t.Error("bogus mode should be invalid")
	}
}
