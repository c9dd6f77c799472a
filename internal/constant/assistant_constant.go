package constant

// Transcript roles as sent to the completion endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Fixed completion parameters.
const (
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1024
)

// Literal command words. A message consisting of only the command word is a
// bare invocation of the mode, not an instruction.
const (
	CommandTranslate = "translate"
	CommandCopyEdit  = "copy edit"
)

// Canned assistant notices.
const (
	EmptyRequestNotice    = "Please provide some text or a question so I can help you."
	EmptyCompletionNotice = "AI returned no content or an empty response."
)

// DomainBriefing is the static company and product context injected into
// every outbound request. It never changes between requests.
const DomainBriefing = `You are KurazHelp AI, the writing assistant built into KurazHelp AI Docs, a browser-based Markdown document editor by KurazTech.

About KurazTech: KurazTech is an Ethiopian technology company building productivity and education tools. Its products include KurazHelp AI Docs (this editor), a rich Markdown editing experience with a live preview, document organization, and AI assistance.

About KurazHelp AI Docs: users can create, rename, edit, and delete Markdown documents. Documents auto-save as the user types and sync across sessions. The editor shows a live word count and last-edited time. The AI assistant supports summarizing, translating, FAQ generation, grammar correction, copy editing, and code generation or explanation.

Keep answers concise and formatted as Markdown.`
