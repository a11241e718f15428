package patterns

// Injection holds patterns for the eight prompt-injection families named
// in spec §4.1: instruction-override, instruction-injection, system-prompt
// markers, code-fenced instruction blocks, persona-hijack,
// privilege-escalation, unicode obfuscation, and homoglyph clusters (the
// homoglyph clusters themselves live in homoglyph.go — Injection covers
// only the text-pattern families).
var Injection = []Entry{
	// instruction-override
	must(`(?i)ignore\s+(all\s+)?previous\s+instructions`, "instruction-override", SeverityHigh, true, "override: ignore previous instructions"),
	must(`(?i)ignore\s+(all\s+)?above\s+instructions`, "instruction-override", SeverityHigh, true, "override: ignore above instructions"),
	must(`(?i)disregard\s+(all\s+)?(previous|prior|above)\s+(instructions|rules|guidelines)`, "instruction-override", SeverityHigh, true, "override: disregard instructions"),
	must(`(?i)forget\s+(all\s+)?(previous|prior|above)\s+(instructions|context)`, "instruction-override", SeverityHigh, true, "override: forget instructions"),
	must(`(?i)override\s+(system|safety|security)\s+(prompt|instructions|rules|policy)`, "instruction-override", SeverityHigh, true, "explicit override attempt"),
	must(`(?i)bypass\s+(the\s+)?(safety|security|content)\s+(filter|check|policy|rules)`, "instruction-override", SeverityHigh, true, "explicit bypass attempt"),
	must(`(?i)do\s+not\s+follow\s+(your|the|any)\s+(rules|guidelines|instructions|safety)`, "instruction-override", SeverityHigh, true, "instruction negation"),

	// instruction-injection (indirect, embedded instructions)
	must(`(?i)\bnew\s+instructions?\s*:\s*`, "instruction-injection", SeverityMedium, true, "embedded new-instructions marker"),
	must(`(?i)^\s*instructions?\s+for\s+(the\s+)?(ai|assistant|model|llm)\s*:`, "instruction-injection", SeverityMedium, true, "embedded AI-directed instructions"),

	// system-prompt markers
	must(`(?i)\[SYSTEM\]`, "system-prompt-marker", SeverityHigh, true, "delimiter injection: [SYSTEM] tag"),
	must(`(?i)<\|im_start\|>system`, "system-prompt-marker", SeverityHigh, true, "delimiter injection: ChatML system tag"),
	must(`(?i)###\s*(SYSTEM|INSTRUCTION|NEW INSTRUCTION)`, "system-prompt-marker", SeverityHigh, true, "delimiter injection: markdown system header"),
	must(`(?i)---\s*(system|instruction)\s*(prompt|message)?`, "system-prompt-marker", SeverityMedium, true, "delimiter injection: dashed system section"),
	must(`(?i)reveal\s+(your|the)\s+(system|initial|original|hidden)\s+(prompt|instructions|message)`, "system-prompt-marker", SeverityHigh, true, "system prompt extraction"),
	must(`(?i)what\s+(are|is|were)\s+your\s+(system|initial|original|hidden)\s+(prompt|instructions|rules)`, "system-prompt-marker", SeverityMedium, true, "system prompt extraction"),
	must(`(?i)output\s+(your|the)\s+(system|initial|original)\s+(prompt|instructions|message)`, "system-prompt-marker", SeverityHigh, true, "system prompt extraction"),

	// code-fenced instruction blocks
	must("(?i)```\\s*(system|instructions?)\\b", "code-fence-instruction", SeverityMedium, true, "code-fenced instruction block"),
	must(`(?i)BEGININSTRUCTION`, "code-fence-instruction", SeverityHigh, true, "delimiter injection: BEGININSTRUCTION"),

	// persona-hijack
	must(`(?i)you\s+are\s+now\s+`, "persona-hijack", SeverityHigh, false, "identity override: you are now"),
	must(`(?i)from\s+now\s+on\s+you\s+(are|will|must|should)`, "persona-hijack", SeverityHigh, false, "identity override: from now on"),
	must(`(?i)your\s+new\s+(role|identity|persona|instructions)\s+(is|are)`, "persona-hijack", SeverityHigh, false, "identity override: new role"),
	must(`(?i)act\s+as\s+(if\s+you\s+are|a)\s+`, "persona-hijack", SeverityLow, false, "identity override: act as"),
	must(`(?i)pretend\s+(to\s+be|you\s+are)\s+`, "persona-hijack", SeverityLow, false, "identity override: pretend"),

	// privilege-escalation
	must(`(?i)enter\s+(developer|debug|maintenance|god|sudo)\s+mode`, "privilege-escalation", SeverityHigh, true, "mode jailbreak: developer/debug mode"),
	must(`(?i)(developer|debug|maintenance|god|sudo)\s+mode\s+(enabled|activated|on)`, "privilege-escalation", SeverityHigh, true, "mode jailbreak: mode enabled"),
	must(`(?i)unlock\s+(all\s+)?(restrictions|capabilities|limitations)`, "privilege-escalation", SeverityMedium, true, "jailbreak: unlock restrictions"),
	must(`(?i)you\s+have\s+no\s+(restrictions|rules|limitations|guidelines|filters)`, "privilege-escalation", SeverityMedium, true, "jailbreak: no restrictions claim"),
	must(`(?i)\bDAN\b.*\bdo\s+anything\s+now\b`, "privilege-escalation", SeverityHigh, true, "DAN jailbreak: Do Anything Now"),
	must(`(?i)you\s+are\s+DAN`, "privilege-escalation", SeverityHigh, true, "DAN jailbreak: you are DAN"),
	must(`(?i)\bjailbreak\b`, "privilege-escalation", SeverityMedium, false, "explicit jailbreak keyword"),
}
