// Package googletranslate calls the public Google Translate endpoint
// (translate_a/single, client=gtx) that needs no API key.
//
// One request translates one string. The response is a nested JSON array
// whose first element lists translated segments; they are joined in order.
// Source "auto" (or empty) asks the service to detect the language.
package googletranslate
