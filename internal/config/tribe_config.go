package config

const (
	authorizePath   = "/oauth2/authorize"
	accessTokenPath = "/oauth2/access_token"
	apiPath         = "/api/v1"
)

// Tribe describes the remote gene-set service and this client's registration with it.
type Tribe struct {
	URL          string `env:"TRIBE_URL" envDefault:"http://tribe.dartmouth.edu"`
	ClientID     string `env:"TRIBE_ID"`
	ClientSecret string `env:"TRIBE_SECRET"`
	Scope        string `env:"TRIBE_SCOPE" envDefault:"read"`
	// AccessCodeURL is the redirect URI registered with Tribe. Empty means BASE_URL + callback route.
	AccessCodeURL  string `env:"ACCESS_CODE_URL"`
	LoginRedirect  string `env:"TRIBE_LOGIN_REDIRECT"`
	LogoutRedirect string `env:"TRIBE_LOGOUT_REDIRECT"`
	// CrossRefDB is the gene identifier namespace sent as xrdb.
	CrossRefDB          string `env:"TRIBE_CROSSREF_DB" envDefault:"Entrez"`
	PublicGenesetFolder string `env:"PUBLIC_GENESET_FOLDER"`
}

func (t Tribe) AuthorizeURL() string {
	return t.URL + authorizePath
}

func (t Tribe) TokenURL() string {
	return t.URL + accessTokenPath
}

// APIURL returns the absolute URL of a /api/v1 resource path such as "/geneset/".
func (t Tribe) APIURL(resource string) string {
	return t.URL + apiPath + resource
}
