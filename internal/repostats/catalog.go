package repostats

// Project is a library with hosted release artifacts.
type Project struct {
	Name     string    `json:"name"`
	Home     string    `json:"home"`
	Versions []Version `json:"versions"`
}

type Version struct {
	Name  string `json:"name"`
	Files []File `json:"files"`
}

type File struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

const analyticsBase = "https://s3.amazonaws.com/static.coveodemo.com/coveo.analytics.js/"

func analyticsVersion(name string) Version {
	return Version{
		Name: name,
		Files: []File{
			{Name: "coveo.analytics.js", URL: analyticsBase + name + "/coveo.analytics.js"},
			{Name: "coveo.analytics.min.js", URL: analyticsBase + name + "/coveo.analytics.min.js"},
		},
	}
}

// DefaultProjects is the built-in release catalogue.
func DefaultProjects() []Project {
	return []Project{
		{
			Name: "coveo.analytics.js",
			Home: "https://github.com/Coveo/analytics.js",
			Versions: []Version{
				analyticsVersion("latest"),
				analyticsVersion("v0.1.1"),
				analyticsVersion("v0.1.0"),
			},
		},
	}
}
