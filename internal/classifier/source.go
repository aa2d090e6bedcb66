package classifier

import (
	"time"

	"github.com/gyeh/healthrisk/internal/model"
)

// Source says where a condition's fitted model lives: a coefficient file, or
// a remote prediction service when URL is set.
type Source struct {
	Path    string
	URL     string
	Timeout time.Duration
}

// Open returns the classifier for condition described by src. Nothing is
// loaded or contacted until the first prediction.
func Open(condition model.Condition, src Source) Classifier {
	if src.URL != "" {
		return NewRemote(src.URL, condition, src.Timeout)
	}
	return NewLinearModel(src.Path)
}
