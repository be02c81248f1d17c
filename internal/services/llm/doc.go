// Package llm provides an OpenAI-compatible chat client used as an
// alternate subtitle line translator.
//
// Each call sends one subtitle line with a system prompt that fixes the
// language pair and asks for a {"translation": "..."} JSON object. Replies
// wrapped in code fences or surrounded by prose are tolerated. There is no
// retry: a failed call is reported to the caller, which keeps the original
// line.
//
// Requires api_key and model; base_url, referer, title and timeout are
// optional and default to OpenRouter.
package llm
