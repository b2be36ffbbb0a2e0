package fileinfo

import (
	"errors"
	"path"
	"runtime"
	"strings"
)

// Scheme represents a logical protocol for display normalization.
type Scheme string

const (
	SchemeFile Scheme = "file"
	SchemeSMB  Scheme = "smb"
)

// Parsed contains a normalized view of an input path.
// Display is the canonical string (smb://host/share/seg... or /abs/path),
// Native is the provider-native path used for I/O.
type Parsed struct {
	Scheme   Scheme
	Host     string
	Share    string
	Segments []string
	Raw      string
	Display  string
	Native   string
	User     string
	Password string
	Domain   string
}

// errIncompleteSMB marks smb:// input that names no share yet (smb://host).
// Ancestor walks hit this on their way up and treat it as a miss.
var errIncompleteSMB = errors.New("smb path has no share")

// parse normalizes input into a Parsed value without touching the network.
func parse(input string) (Parsed, error) {
	raw := strings.TrimSpace(input)
	if !isSMBURL(raw) && !strings.HasPrefix(raw, "//") {
		return Parsed{Scheme: SchemeFile, Raw: input, Display: raw, Native: raw}, nil
	}
	host, share, segs, user, pass, domain := parseSMBURL(raw)
	if host == "" || share == "" {
		return Parsed{Scheme: SchemeSMB, Raw: input, Display: canonicalizeSMB(raw)}, errIncompleteSMB
	}
	disp := "smb://" + path.Join(host, share)
	native := "/"
	if len(segs) > 0 {
		disp += "/" + path.Join(segs...)
		native = "/" + path.Join(segs...)
	}
	p := Parsed{
		Scheme:   SchemeSMB,
		Host:     host,
		Share:    share,
		Segments: segs,
		Raw:      input,
		Display:  disp,
		Native:   native,
		User:     user,
		Password: pass,
		Domain:   domain,
	}
	if runtime.GOOS == "windows" {
		// the OS redirector handles UNC paths natively
		p.Native = smbURLToUNC(disp)
	}
	return p, nil
}

func isSMBURL(p string) bool {
	return strings.HasPrefix(strings.ToLower(p), "smb://")
}

// smbURLToUNC converts smb://host/share/a/b to \\host\share\a\b (credentials dropped).
func smbURLToUNC(u string) string {
	s := u[len("smb://"):]
	if at := strings.Index(s, "@"); at >= 0 {
		s = s[at+1:]
	}
	return `\\` + strings.ReplaceAll(strings.Trim(s, "/"), "/", `\`)
}

func canonicalizeSMB(url string) string {
	s := strings.TrimSpace(url)
	s = strings.ReplaceAll(s, "\\", "/")
	if !isSMBURL(s) {
		s = "smb://" + strings.TrimPrefix(s, "//")
	}
	return s
}

// parseSMBURL extracts host, share, segments and credentials from an smb-like path.
// Accepts forms: smb://[domain;user[:pass]@]host/share/..., //host/share/...
func parseSMBURL(u string) (host, share string, segments []string, user, pass, domain string) {
	s := strings.TrimSpace(u)
	if strings.HasPrefix(s, "//") {
		s = "smb:" + s
	}
	if !isSMBURL(s) {
		return "", "", nil, "", "", ""
	}
	t := s[len("smb://"):]
	if at := strings.LastIndex(t, "@"); at >= 0 {
		cred := t[:at]
		t = t[at+1:]
		if colon := strings.Index(cred, ":"); colon >= 0 {
			pass = cred[colon+1:]
			cred = cred[:colon]
		}
		if i := strings.IndexAny(cred, `;\`); i >= 0 {
			domain = cred[:i]
			user = cred[i+1:]
		} else {
			user = cred
		}
	}
	parts := strings.Split(strings.TrimRight(t, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, "", "", ""
	}
	host = parts[0]
	share = parts[1]
	for _, seg := range parts[2:] {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return
}
