package serializer

// Success serializes the acknowledgement of an operation without payload.
func Success() map[string]any {
	return map[string]any{
		"success": true,
	}
}

// Saved serializes the acknowledgement of a created or updated record.
func Saved(id string) map[string]any {
	return map[string]any{
		"success": true,
		"_id":     id,
	}
}

// Upload serializes the data URI of an uploaded image.
func Upload(uri string) map[string]any {
	return map[string]any{
		"success": true,
		"uri":     uri,
	}
}
