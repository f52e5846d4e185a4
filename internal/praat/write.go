package praat

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write serializes the document in the long text format. Output is UTF-8;
// compose with textenc.NewWriter to store another encoding.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, `File type = "ooTextFile"`)
	fmt.Fprintln(bw, `Object class = "TextGrid"`)
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "xmin = %s\n", formatNumber(d.XMin))
	fmt.Fprintf(bw, "xmax = %s\n", formatNumber(d.XMax))
	if len(d.Tiers) == 0 {
		fmt.Fprintln(bw, "tiers? <absent>")
		return bw.Flush()
	}
	fmt.Fprintln(bw, "tiers? <exists>")
	fmt.Fprintf(bw, "size = %d\n", len(d.Tiers))
	fmt.Fprintln(bw, "item []:")

	for i := range d.Tiers {
		writeTier(bw, &d.Tiers[i], i+1)
	}
	return bw.Flush()
}

func writeTier(bw *bufio.Writer, tier *Tier, position int) {
	fmt.Fprintf(bw, "    item [%d]:\n", position)
	class := "IntervalTier"
	if tier.IsPoint {
		class = "TextTier"
	}
	fmt.Fprintf(bw, "        class = %s\n", quote(class))
	fmt.Fprintf(bw, "        name = %s\n", quote(tier.Name))
	fmt.Fprintf(bw, "        xmin = %s\n", formatNumber(tier.XMin))
	fmt.Fprintf(bw, "        xmax = %s\n", formatNumber(tier.XMax))

	if tier.IsPoint {
		fmt.Fprintf(bw, "        points: size = %d\n", len(tier.Points))
		for j, pt := range tier.Points {
			fmt.Fprintf(bw, "        points [%d]:\n", j+1)
			fmt.Fprintf(bw, "            number = %s\n", formatNumber(pt.Number))
			fmt.Fprintf(bw, "            mark = %s\n", quote(pt.Mark))
		}
		return
	}

	fmt.Fprintf(bw, "        intervals: size = %d\n", len(tier.Intervals))
	for j, iv := range tier.Intervals {
		fmt.Fprintf(bw, "        intervals [%d]:\n", j+1)
		fmt.Fprintf(bw, "            xmin = %s\n", formatNumber(iv.XMin))
		fmt.Fprintf(bw, "            xmax = %s\n", formatNumber(iv.XMax))
		fmt.Fprintf(bw, "            text = %s\n", quote(iv.Text))
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
