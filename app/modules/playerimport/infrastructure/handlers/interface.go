package importhandlers

import "net/http"

// Handlers defines the HTTP surface of the import module.
type Handlers interface {
	// HandleUpload accepts a multipart file upload and returns a validation
	// summary. Nothing is persisted.
	HandleUpload(w http.ResponseWriter, r *http.Request)

	// HandleRevalidate re-runs validation over edited rows.
	HandleRevalidate(w http.ResponseWriter, r *http.Request)

	// HandleCommit persists marked rows as players, all-or-nothing.
	HandleCommit(w http.ResponseWriter, r *http.Request)

	// HandleGetImport returns one import audit with its row entries.
	HandleGetImport(w http.ResponseWriter, r *http.Request)

	// HandleTemplate serves a downloadable template file.
	HandleTemplate(w http.ResponseWriter, r *http.Request)
}
