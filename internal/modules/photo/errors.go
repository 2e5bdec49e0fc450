package photo

import "errors"

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrUnreadableImage = errors.New("file is not a recognizable image")
	ErrTranscodeFailed = errors.New("image could not be transcoded")
	ErrPersistFailed   = errors.New("photo record could not be saved")
	ErrPhotoNotFound   = errors.New("photo not found")
)
