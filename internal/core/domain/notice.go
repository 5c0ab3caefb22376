package domain

import (
	"errors"
	"fmt"
)

type NoticeLevel string

const (
	NoticeInfo      NoticeLevel = "info"
	NoticeSuccess   NoticeLevel = "success"
	NoticeAttention NoticeLevel = "attention"
	NoticeError     NoticeLevel = "error"
	NoticeDemo      NoticeLevel = "demo"
)

// Notice is user-facing text handed to the UI collaborator.
type Notice struct {
	Level NoticeLevel
	Title string
	Text  string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s", n.Title, n.Text)
}

func NoAssetNotice() Notice {
	return Notice{Level: NoticeAttention, Title: "Attention", Text: "Select an image first."}
}

func InvalidFormatNotice() Notice {
	return Notice{Level: NoticeError, Title: "Error",
		Text: "Please select a valid image (JPEG, PNG, GIF or WebP)."}
}

func SuccessNotice(style string) Notice {
	return Notice{Level: NoticeSuccess, Title: "Success",
		Text: fmt.Sprintf("Image transformed with style %s!", style)}
}

func DemoNotice(style string) Notice {
	return Notice{Level: NoticeDemo, Title: "Demo mode",
		Text: fmt.Sprintf("The API is temporarily unavailable. This is a demo image of the %s style.", style)}
}

const failurePrefix = "Could not process the image. "

// FailureNotice explains an upload failure in terms of its category.
func FailureNotice(err error) Notice {
	var reason string

	var uploadErr *UploadError
	switch {
	case errors.Is(err, ErrPayloadTooLarge):
		reason = "Image too large. Try a smaller image."
	case errors.Is(err, ErrBadRequest):
		reason = "Invalid format or incorrect parameters."
	case errors.Is(err, ErrNetworkUnavailable):
		reason = "Connection problem. Check your internet."
	case errors.Is(err, ErrMalformedResponse):
		reason = "The service did not return an image URL."
	case errors.As(err, &uploadErr) && uploadErr.Status != 0:
		body := uploadErr.Body
		if body == "" {
			body = "server error"
		}
		reason = fmt.Sprintf("Error %d: %s", uploadErr.Status, body)
	case err != nil:
		reason = err.Error()
	default:
		reason = "Try again."
	}

	return Notice{Level: NoticeError, Title: "Error", Text: failurePrefix + reason}
}
