package debug

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Charts 曲线绘制
type Charts struct {
	Record
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	// 初始化界面
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路节点信息",
			Subtitle: "电路连接节点网络图",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
	)
	graph.SetSeriesOptions(
		charts.WithEmphasisOpts(opts.Emphasis{
			Label: &opts.Label{
				Show:     opts.Bool(true),
				Color:    "black",
				Position: "left",
			},
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Curveness: 0.3,
		}),
	)
	lineV := charts.NewLine()
	lineV.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电压收敛曲线",
			Subtitle: "电路节点电压随迭代轮次变化曲线",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithAnimation(true),
	)
	lineD := charts.NewLine()
	lineD.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "残差曲线",
			Subtitle: "每轮最大电压变化曲线",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "log",
			Scale: opts.Bool(true),
		}),
		charts.WithAnimation(true),
	)
	// 处理数据
	{
		// 初始化电路节点
		graphLink := make([]opts.GraphLink, 0)
		graphNodes := make([]opts.GraphNode, 0, len(c.Branches)+len(c.Nodes))
		for _, b := range c.Branches {
			graphNodes = append(graphNodes, opts.GraphNode{
				Name:     b,
				Category: 0,
				Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
			})
		}
		for i, conn := range c.Nodes {
			name := fmt.Sprintf("Node(%d)", i)
			node := opts.GraphNode{
				Name:     name,
				Category: 1,
				Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
			}
			for _, g := range c.Grounds {
				if g == i {
					node.ItemStyle = &opts.ItemStyle{Color: "#000000de"}
				}
			}
			graphNodes = append(graphNodes, node)
			for _, y := range conn {
				graphLink = append(graphLink, opts.GraphLink{
					Source: c.Branches[y[0]],
					Target: name,
					Value:  float32(y[1]),
				})
			}
		}
		graph.AddSeries("电路列表", graphNodes, graphLink,
			charts.WithGraphChartOpts(opts.GraphChart{
				Categories: []*opts.GraphCategory{
					{Name: "元件", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
					{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
				},
				Roam:               opts.Bool(true),
				Force:              &opts.GraphForce{Repulsion: 80},
				EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(true)},
				FocusNodeAdjacency: opts.Bool(true),
			}))
		// 电压信息
		lineV.SetXAxis(c.Pass)
		if len(c.Voltage) > 0 {
			for i := range c.Voltage[0] {
				items := make([]opts.LineData, len(c.Voltage))
				for x, row := range c.Voltage {
					items[x] = opts.LineData{Value: row[i]}
				}
				lineV.AddSeries(fmt.Sprintf("Node(%d)", i), items)
			}
		}
		// 残差信息
		lineD.SetXAxis(c.Pass)
		items := make([]opts.LineData, len(c.Delta))
		for x, d := range c.Delta {
			items[x] = opts.LineData{Value: d}
		}
		lineD.AddSeries("最大电压变化", items)
	}
	// 构建界面
	page := components.NewPage()
	page.AddCharts(
		graph,
		lineV,
		lineD,
	)
	return page.Render(w)
}

// Handler 发布到网页面
// 输出流中途失败无法回传调用方, 交由 Error 处理。
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		c.Error(err)
	}
}
