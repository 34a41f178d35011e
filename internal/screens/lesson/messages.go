package lesson

import "github.com/abhisek/mlplay/internal/content"

// contentLoadedMsg is sent when the module bundle has resolved.
type contentLoadedMsg struct {
	Content *content.ModuleContent
	Err     error
}
