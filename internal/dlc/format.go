package dlc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"dlccontrol/internal/models"
)

const minRuleWidth = 50

type node struct {
	key      string
	value    string
	children []node
}

// PrintParameters renders p as an indented key/value listing.
func PrintParameters(w io.Writer, p models.Parameters, header string) error {
	return printTree(w, parameterNodes(p), header)
}

// PrintLimits renders the validation limits.
func PrintLimits(w io.Writer, l models.Limits, header string) error {
	return printTree(w, []node{
		{key: "vmin", value: fmtFloat(l.VoltageMin)},
		{key: "vmax", value: fmtFloat(l.VoltageMax)},
		{key: "cmin", value: fmtFloat(l.CurrentMin)},
		{key: "cmax", value: fmtFloat(l.CurrentMax)},
		{key: "fmin", value: fmtFloat(l.FrequencyMin)},
		{key: "fmax", value: fmtFloat(l.FrequencyMax)},
		{key: "tmin", value: fmtOptional(l.TempMin)},
		{key: "tmax", value: fmtOptional(l.TempMax)},
		{key: "wlmin", value: fmtOptional(l.WavelengthMin)},
		{key: "wlmax", value: fmtOptional(l.WavelengthMax)},
	}, header)
}

func parameterNodes(p models.Parameters) []node {
	s := p.Scan
	remote := make([]node, 0, len(p.Remote))
	for _, unit := range models.RemoteUnits {
		r, ok := p.Remote[unit]
		if !ok {
			continue
		}
		remote = append(remote, node{key: string(unit), children: []node{
			{key: "enabled", value: fmt.Sprint(r.Enabled)},
			{key: "factor", value: fmtFloat(r.Factor)},
			{key: "signal", value: r.Signal.String()},
		}})
	}
	return []node{
		{key: "timestamp", value: p.Timestamp.Format(time.RFC3339)},
		{key: "scan", children: []node{
			{key: "enabled", value: fmt.Sprint(s.Enabled)},
			{key: "output channel", value: s.OutputChannel.String()},
			{key: "frequency", value: fmtFloat(s.Frequency)},
			{key: "amplitude", value: fmtFloat(s.Amplitude)},
			{key: "offset", value: fmtFloat(s.Offset)},
			{key: "start", value: fmtFloat(s.Start)},
			{key: "end", value: fmtFloat(s.End)},
		}},
		{key: "analogue remote", children: remote},
		{key: "wavelength", children: []node{
			{key: "wl setpoint", value: fmtOptional(p.Wavelength.Setpoint)},
			{key: "wl actual", value: fmtOptional(p.Wavelength.Actual)},
		}},
		{key: "temperature", children: []node{
			{key: "temp setpoint", value: fmtOptional(p.Temperature.Setpoint)},
			{key: "temp actual", value: fmtOptional(p.Temperature.Actual)},
		}},
	}
}

func printTree(w io.Writer, nodes []node, header string) error {
	width := max(len(header), longestKey(nodes), minRuleWidth)
	rule := strings.Repeat("-", width)

	var b strings.Builder
	b.WriteString("\n")
	if header != "" {
		b.WriteString(header + "\n")
	}
	b.WriteString(rule + "\n")
	writeNodes(&b, nodes, 0)
	b.WriteString(rule + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeNodes(b *strings.Builder, nodes []node, indent int) {
	pad := strings.Repeat(" | ", indent)
	keyWidth := longestKey(nodes)
	for _, n := range nodes {
		if n.children != nil {
			fmt.Fprintf(b, "%s%s:\n", pad, n.key)
			writeNodes(b, n.children, indent+1)
			continue
		}
		fmt.Fprintf(b, "%s%-*s: %s\n", pad, keyWidth, n.key, n.value)
	}
}

func longestKey(nodes []node) int {
	n := 0
	for _, nd := range nodes {
		n = max(n, len(nd.key))
	}
	return n
}

func fmtFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}

func fmtOptional(f *float64) string {
	if f == nil {
		return "n/a"
	}
	return fmtFloat(*f)
}
