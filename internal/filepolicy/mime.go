package filepolicy

var mimeByExtension = map[string]string{
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MimeForExtension resolves a MIME type from a lowercased extension; unknown
// extensions map to a generic binary type.
func MimeForExtension(ext string) string {
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
