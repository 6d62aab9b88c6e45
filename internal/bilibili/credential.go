package bilibili

import (
	"net/http"
	"os"
)

// Credential holds the browser cookies that authenticate API calls.
type Credential struct {
	SESSDATA string
	BiliJct  string
	Buvid3   string
}

// CredentialFromEnv reads SESSDATA, BILI_JCT and BUVID3 from the environment.
func CredentialFromEnv() Credential {
	return Credential{
		SESSDATA: os.Getenv("SESSDATA"),
		BiliJct:  os.Getenv("BILI_JCT"),
		Buvid3:   os.Getenv("BUVID3"),
	}
}

// Empty reports whether no session cookie is set.
func (c Credential) Empty() bool {
	return c.SESSDATA == ""
}

func (c Credential) apply(req *http.Request) {
	for name, value := range map[string]string{
		"SESSDATA": c.SESSDATA,
		"bili_jct": c.BiliJct,
		"buvid3":   c.Buvid3,
	} {
		if value != "" {
			req.AddCookie(&http.Cookie{Name: name, Value: value})
		}
	}
}
