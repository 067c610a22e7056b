// Package api is the JSON HTTP adapter over the study controller. Each
// handler decodes its request, calls one service.StudyService method and
// renders the resulting view. Errors are mapped to status codes and safe
// messages here; their details only reach the logs, redacted.
package api
