// Package workspace fingerprints the working directory so the system prompt
// can tell the model what kind of project it is operating in.
package workspace

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Fingerprint is what Detect learned about a directory. Empty strings and
// false values are not rendered.
type Fingerprint struct {
	IsGitRepo bool
	GitBranch string

	IsNodeProject      bool
	NodePackageManager string
	NodeVersion        string
	IsTypeScript       bool
	MonorepoTool       string
	WebFramework       string

	IsPythonProject      bool
	PythonPackageManager string
	PythonVersion        string
	HasVirtualenv        bool

	IsJavaProject      bool
	JavaProjectManager string

	IsRustProject bool

	IsGoProject bool
	GoVersion   string

	IsPHPProject    bool
	IsRubyProject   bool
	RubyVersion     string
	IsDotnetProject bool

	HasDocker        bool
	HasDockerCompose bool
	HasKubernetes    bool
	CIPlatform       string
	IaCTool          string
	HasEnvFiles      bool
}

// Detect inspects dir. Unreadable marker files are treated as absent.
func Detect(dir string) Fingerprint {
	d := detector{dir: dir}
	var fp Fingerprint

	fp.GitBranch, fp.IsGitRepo = gitBranch(dir)

	if d.exists("package.json") {
		fp.IsNodeProject = true
		fp.NodePackageManager = d.first("npm",
			"bun.lockb", "bun",
			"pnpm-lock.yaml", "pnpm",
			"yarn.lock", "yarn",
			"package-lock.json", "npm")
		fp.IsTypeScript = d.anyOf("tsconfig.json", "tsconfig.base.json")
		fp.MonorepoTool = d.first("",
			"lerna.json", "lerna",
			"nx.json", "nx",
			"turbo.json", "turborepo",
			"pnpm-workspace.yaml", "pnpm-workspace")
		pkg := d.packageJSON()
		fp.NodeVersion = d.firstLine(".nvmrc", ".node-version")
		if fp.NodeVersion == "" {
			fp.NodeVersion = pkg.Engines.Node
		}
		fp.WebFramework = pkg.webFramework()
	}

	if d.anyOf("requirements.txt", "pyproject.toml", "setup.py", "Pipfile", "poetry.lock", "setup.cfg") {
		fp.IsPythonProject = true
		fp.PythonPackageManager = d.first("pip",
			"environment.yml", "conda",
			"dependencies.yml", "conda",
			"poetry.lock", "poetry",
			"Pipfile", "pipenv",
			"uv.lock", "uv")
		fp.PythonVersion = d.pythonVersion()
		fp.HasVirtualenv = d.anyOf("venv", ".venv", "env")
	}

	switch {
	case d.exists("pom.xml"):
		fp.IsJavaProject, fp.JavaProjectManager = true, "maven"
	case d.anyOf("build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts"):
		fp.IsJavaProject, fp.JavaProjectManager = true, "gradle"
	}

	fp.IsRustProject = d.exists("Cargo.toml")

	if d.anyOf("go.mod", "Gopkg.toml") {
		fp.IsGoProject = true
		fp.GoVersion = d.goVersion()
	}

	fp.IsPHPProject = d.exists("composer.json")

	if d.anyOf("Gemfile", "Rakefile") {
		fp.IsRubyProject = true
		fp.RubyVersion = d.firstLine(".ruby-version")
	}

	fp.IsDotnetProject = d.glob("*.csproj", "*.fsproj", "*.sln")

	fp.HasDockerCompose = d.anyOf("docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml")
	fp.HasDocker = fp.HasDockerCompose || d.anyOf("Dockerfile", ".dockerignore")
	fp.HasKubernetes = d.anyOf("k8s", "kubernetes", "deployment.yaml", "deployment.yml")

	fp.CIPlatform = d.first("",
		filepath.Join(".github", "workflows"), "github-actions",
		".gitlab-ci.yml", "gitlab-ci",
		"Jenkinsfile", "jenkins",
		".circleci", "circleci",
		".travis.yml", "travis-ci",
		"azure-pipelines.yml", "azure-pipelines")

	switch {
	case d.anyOf("terraform", ".terraform") || d.glob("*.tf"):
		fp.IaCTool = "terraform"
	case d.anyOf("Pulumi.yaml", "Pulumi.yml"):
		fp.IaCTool = "pulumi"
	case d.exists("cdk.json"):
		fp.IaCTool = "cdk"
	case d.anyOf("ansible.cfg", "playbook.yml"):
		fp.IaCTool = "ansible"
	}

	fp.HasEnvFiles = d.anyOf(".env", ".env.local", ".env.development", ".env.production")

	return fp
}

// Flags renders the fingerprint as "- key: value" lines in a fixed order.
func (fp Fingerprint) Flags() string {
	var b flagWriter
	b.flag("is_git_repo", fp.IsGitRepo)
	b.value("git_branch", fp.GitBranch)
	b.flag("is_node_project", fp.IsNodeProject)
	b.value("node_package_manager", fp.NodePackageManager)
	b.value("node_version", fp.NodeVersion)
	b.flag("is_typescript_project", fp.IsTypeScript)
	b.value("monorepo_tool", fp.MonorepoTool)
	b.value("web_framework", fp.WebFramework)
	b.flag("is_python_project", fp.IsPythonProject)
	b.value("python_package_manager", fp.PythonPackageManager)
	b.value("python_version", fp.PythonVersion)
	b.flag("has_virtualenv", fp.HasVirtualenv)
	b.flag("is_java_project", fp.IsJavaProject)
	b.value("java_project_manager", fp.JavaProjectManager)
	b.flag("is_rust_project", fp.IsRustProject)
	b.flag("is_go_project", fp.IsGoProject)
	b.value("go_version", fp.GoVersion)
	b.flag("is_php_project", fp.IsPHPProject)
	b.flag("is_ruby_project", fp.IsRubyProject)
	b.value("ruby_version", fp.RubyVersion)
	b.flag("is_dotnet_project", fp.IsDotnetProject)
	b.flag("has_docker", fp.HasDocker)
	b.flag("has_docker_compose", fp.HasDockerCompose)
	b.flag("has_kubernetes", fp.HasKubernetes)
	b.value("ci_cd_platform", fp.CIPlatform)
	b.value("iac_tool", fp.IaCTool)
	b.flag("has_env_files", fp.HasEnvFiles)
	return strings.Join(b.lines, "\n")
}

// Render substitutes {{CWD}} and {{FLAGS}} in a system prompt template.
func Render(template, cwd, flags string) string {
	return strings.NewReplacer("{{CWD}}", cwd, "{{FLAGS}}", flags).Replace(template)
}

type flagWriter struct {
	lines []string
}

func (w *flagWriter) flag(key string, v bool) {
	if v {
		w.lines = append(w.lines, "- "+key+": true")
	}
}

func (w *flagWriter) value(key, v string) {
	if v != "" {
		w.lines = append(w.lines, "- "+key+": "+v)
	}
}

// gitBranch finds the repository containing dir, searching parent
// directories, and returns the branch HEAD points at. A detached HEAD
// yields an empty branch.
func gitBranch(dir string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", true
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), true
	}
	return "", true
}

type detector struct {
	dir string
}

func (d detector) path(name string) string {
	return filepath.Join(d.dir, name)
}

func (d detector) exists(name string) bool {
	_, err := os.Stat(d.path(name))
	return err == nil
}

func (d detector) anyOf(names ...string) bool {
	for _, n := range names {
		if d.exists(n) {
			return true
		}
	}
	return false
}

func (d detector) glob(patterns ...string) bool {
	for _, p := range patterns {
		if matches, _ := filepath.Glob(d.path(p)); len(matches) > 0 {
			return true
		}
	}
	return false
}

// first takes (marker, value) pairs and returns the value of the first
// marker that exists, or fallback.
func (d detector) first(fallback string, pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if d.exists(pairs[i]) {
			return pairs[i+1]
		}
	}
	return fallback
}

// firstLine returns the trimmed content of the first readable file.
func (d detector) firstLine(names ...string) string {
	for _, n := range names {
		data, err := os.ReadFile(d.path(n))
		if err != nil {
			continue
		}
		if line, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n"); line != "" {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

type packageJSON struct {
	Engines struct {
		Node string `json:"node"`
	} `json:"engines"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (d detector) packageJSON() packageJSON {
	var pkg packageJSON
	data, err := os.ReadFile(d.path("package.json"))
	if err != nil {
		return pkg
	}
	_ = json.Unmarshal(data, &pkg)
	return pkg
}

var webFrameworks = []struct {
	deps []string
	name string
}{
	{[]string{"next"}, "nextjs"},
	{[]string{"nuxt", "@nuxt/core"}, "nuxt"},
	{[]string{"remix", "@remix-run/react"}, "remix"},
	{[]string{"svelte", "@sveltejs/kit"}, "svelte"},
	{[]string{"react"}, "react"},
	{[]string{"vue"}, "vue"},
	{[]string{"@angular/core"}, "angular"},
}

func (p packageJSON) webFramework() string {
	for _, fw := range webFrameworks {
		for _, dep := range fw.deps {
			if _, ok := p.Dependencies[dep]; ok {
				return fw.name
			}
			if _, ok := p.DevDependencies[dep]; ok {
				return fw.name
			}
		}
	}
	return ""
}

type pyproject struct {
	Project struct {
		RequiresPython string `toml:"requires-python"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]any `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (d detector) pythonVersion() string {
	if v := d.firstLine(".python-version"); v != "" {
		return v
	}
	if v := d.firstLine("runtime.txt"); strings.HasPrefix(v, "python-") {
		return strings.TrimPrefix(v, "python-")
	}

	var py pyproject
	if _, err := toml.DecodeFile(d.path("pyproject.toml"), &py); err != nil {
		return ""
	}
	if py.Project.RequiresPython != "" {
		return py.Project.RequiresPython
	}
	if v, ok := py.Tool.Poetry.Dependencies["python"].(string); ok {
		return v
	}
	return ""
}

func (d detector) goVersion() string {
	data, err := os.ReadFile(d.path("go.mod"))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "go" {
			return fields[1]
		}
	}
	return ""
}

// ErrNoWorkingDir is returned by Current when the working directory cannot be determined.
var ErrNoWorkingDir = errors.New("cannot determine working directory")

// Current fingerprints the process working directory and returns it with the rendered flags.
func Current() (cwd, flags string, err error) {
	cwd, err = os.Getwd()
	if err != nil {
		return "", "", errors.Join(ErrNoWorkingDir, err)
	}
	return cwd, Detect(cwd).Flags(), nil
}
