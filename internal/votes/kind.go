package votes

import "fmt"

// Kind tags the table a vote points at. The tag is stored verbatim in
// votes.votable_type, so the string values are part of the schema.
type Kind string

const (
	KindArticle   Kind = "Article"
	KindComment   Kind = "Comment"
	KindFactCheck Kind = "FactCheck"
)

var kinds = []Kind{KindArticle, KindComment, KindFactCheck}

// Kinds returns every recognized target kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind validates a kind tag. Matching is exact and case-sensitive.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected Article, Comment or FactCheck)", ErrInvalidTargetKind, s)
}

func (k Kind) Valid() bool {
	_, err := ParseKind(string(k))
	return err == nil
}

func (k Kind) String() string { return string(k) }

// Ref identifies a votable target across the three content tables.
type Ref struct {
	Kind Kind `json:"votable_type"`
	ID   int  `json:"votable_id"`
}

// NewRef builds a Ref from wire values.
func NewRef(kind string, id int) (Ref, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Kind: k, ID: id}, nil
}

func (r Ref) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}
