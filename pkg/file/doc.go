// Package file inspects uploaded files: MIME detection from content, size and
// type checks, filename sanitisation, and conversion to data URLs so an
// uploaded image can be previewed inline without being stored anywhere.
//
// # Usage
//
//	up, err := file.Read(fh, 2<<20) // 2 MiB limit
//	if errors.Is(err, file.ErrFileTooLarge) {
//		// reject
//	}
//	if up.IsImage() {
//		src := up.DataURL() // data:image/png;base64,...
//	}
//
// MIME types are detected with http.DetectContentType on the first 512 bytes,
// never from the extension alone, so renamed files cannot pass as images.
package file
