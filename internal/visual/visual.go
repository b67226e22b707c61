// pattern: Imperative Shell

package visual

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gitship/internal/history"
)

const (
	// DirName is the output directory created under the project path.
	DirName = "visualization"

	dataFileName = "commits.json"
	htmlFileName = "commits.html"
)

// Emitter writes commit records as a static artifact: a JSON data file
// plus a self-contained HTML document that renders a D3 timeline from
// the embedded data. Records must arrive in chronological order; the
// chart plots earliest to latest, left to right.
type Emitter struct{}

// New creates an Emitter.
func New() *Emitter {
	return &Emitter{}
}

// Emit writes the artifact under projectPath and returns the path of
// the renderable document.
func (e *Emitter) Emit(projectPath string, records []history.Commit) (string, error) {
	outDir := filepath.Join(projectPath, DirName)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding commit records: %w", err)
	}

	dataPath := filepath.Join(outDir, dataFileName)
	if err := os.WriteFile(dataPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing data file: %w", err)
	}

	htmlPath := filepath.Join(outDir, htmlFileName)
	doc := strings.Replace(htmlTemplate, "/*COMMITS*/[]", string(data), 1)
	if err := os.WriteFile(htmlPath, []byte(doc), 0644); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	return htmlPath, nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Commit History</title>
<script src="https://d3js.org/d3.v7.min.js"></script>
<style>
  body { font-family: sans-serif; margin: 2rem; }
  .commit circle { fill: #1e66f5; }
  .commit text { font-size: 11px; fill: #4c4f69; }
  .axis path, .axis line { stroke: #9ca0b0; }
</style>
</head>
<body>
<h1>Commit History</h1>
<svg id="chart" width="960" height="320"></svg>
<script>
const commits = /*COMMITS*/[];
const svg = d3.select("#chart");
const margin = {top: 20, right: 30, bottom: 40, left: 40};
const width = +svg.attr("width") - margin.left - margin.right;
const height = +svg.attr("height") - margin.top - margin.bottom;
const g = svg.append("g").attr("transform", "translate(" + margin.left + "," + margin.top + ")");

const x = d3.scaleTime()
  .domain(d3.extent(commits, d => new Date(d.timestamp)))
  .range([0, width]);

g.append("g")
  .attr("class", "axis")
  .attr("transform", "translate(0," + (height / 2) + ")")
  .call(d3.axisBottom(x));

const node = g.selectAll(".commit")
  .data(commits)
  .enter().append("g")
  .attr("class", "commit")
  .attr("transform", d => "translate(" + x(new Date(d.timestamp)) + "," + (height / 2) + ")");

node.append("circle").attr("r", 6);
node.append("text")
  .attr("transform", "rotate(-45)")
  .attr("x", 10)
  .attr("y", -10)
  .text(d => d.id + " " + d.message);
</script>
</body>
</html>
`
