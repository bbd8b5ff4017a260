package model

// AdKind enumerates the closed set of advertisement kinds a movie can carry.
// The database enforces the same set via an ENUM column; the constants here
// keep handler and consumer code from passing free-form strings around.
type AdKind string

const (
    AdKindMontage AdKind = "montage"
    AdKindBanner  AdKind = "banner"
    AdKindVideo   AdKind = "video"
)

// Valid reports whether k is one of the known ad kinds.
func (k AdKind) Valid() bool {
    switch k {
    case AdKindMontage, AdKindBanner, AdKindVideo:
        return true
    }
    return false
}

// AdPlacement enumerates where an ad slot sits relative to playback.
type AdPlacement string

const (
    AdPosPre    AdPlacement = "pre"
    AdPosMid    AdPlacement = "mid"
    AdPosPost   AdPlacement = "post"
    AdPosBanner AdPlacement = "banner"
)

// Valid reports whether p is one of the known placements.
func (p AdPlacement) Valid() bool {
    switch p {
    case AdPosPre, AdPosMid, AdPosPost, AdPosBanner:
        return true
    }
    return false
}

// Episode is a single episode entry nested under a movie. Order within the
// movie is significant and preserved by the repository.
type Episode struct {
    Title string `json:"title"`
    Video string `json:"video"`
}

// Ad is an advertisement slot nested under a movie. The `type` and
// `position` tags match the wire contract of the admin console.
type Ad struct {
    Kind     AdKind      `json:"type"`
    URL      string      `json:"url"`
    Position AdPlacement `json:"position"`
}

// Movie is a catalog document: one row in `movies` plus its ordered
// episode and ad child rows, marshalled as a single JSON object.
type Movie struct {
    ID       uint64    `json:"id"`
    Title    string    `json:"title"`
    Poster   string    `json:"poster"`
    Video    string    `json:"video"`
    Category string    `json:"category"`
    Rating   string    `json:"rating"`
    Episodes []Episode `json:"episodes"`
    Ads      []Ad      `json:"ads"`
}
