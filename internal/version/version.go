package version

// Version is the guardrail release version.
const Version = "0.1.0"
