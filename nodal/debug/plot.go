package debug

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SavePNG 收敛曲线输出为静态PNG
// 输出字体不含中文字形, 图内标签使用ASCII。
func (list *Record) SavePNG(filename string) error {
	p := plot.New()
	p.Title.Text = "node voltage convergence"
	p.X.Label.Text = "pass"
	p.Y.Label.Text = "voltage (V)"
	if len(list.Voltage) == 0 {
		return fmt.Errorf("无记录数据可绘制")
	}
	for i := range list.Voltage[0] {
		pts := make(plotter.XYs, len(list.Voltage))
		for x, row := range list.Voltage {
			pts[x].X = float64(list.Pass[x])
			pts[x].Y = row[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("曲线创建失败: %w", err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("node %d", i), line)
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, filename)
}
