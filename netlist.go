package circuitlab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"circuitlab/types"
)

// Load 加载 netlist 格式数据
func (cir *Circuit) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return cir.Read(file)
}

// Read 从数据流加载
// 行格式: 类型前缀+元件ID 接线点 接线点 元件值, `#`开头为注释,
// `.`开头的标记行跳过。接线点-1表示引脚未连接。
func (cir *Circuit) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		// 解析标记
		if fields[0][0] == '.' {
			continue
		}
		kind := types.GetLetterKind(fields[0][:1])
		if kind == types.KindUnknown {
			return fmt.Errorf("未知元件定义解析: %s", line)
		}
		id, err := strconv.Atoi(fields[0][1:])
		if err != nil {
			return fmt.Errorf("元件ID解析失败: %s", line)
		}
		// 处理引脚
		l := kind.GetPostCount() + 1
		if len(fields) < l+1 {
			return fmt.Errorf("元件定义引脚定义错误: %d-%s", kind.GetPostCount(), line)
		}
		comp := &types.Component{
			ID:   id,
			Kind: kind,
			Ends: [2]types.Endpoint{
				{Pos: types.Unplaced(), Junction: types.NoJunctionID},
				{Pos: types.Unplaced(), Junction: types.NoJunctionID},
			},
		}
		for pin := 0; pin < kind.GetPostCount(); pin++ {
			jid, err := strconv.Atoi(fields[1+pin])
			if err != nil {
				return fmt.Errorf("接线点解析失败: %s", line)
			}
			if jid < 0 {
				continue
			}
			cir.Junctions[jid] = struct{}{}
			if jid >= cir.junctionCount {
				cir.junctionCount = jid + 1
			}
			comp.Ends[pin].Junction = jid
		}
		// 原始元件值
		value, err := strconv.ParseFloat(fields[l], 64)
		if err != nil {
			return fmt.Errorf("元件值解析失败: %s", line)
		}
		if kind == types.KindSwitch {
			comp.Closed = value != 0
		} else {
			comp.Value = value
		}
		cir.Components[id] = comp
		if id >= cir.componentCount {
			cir.componentCount = id + 1
		}
	}
	return scanner.Err()
}

// Export 导出 netlist 格式数据
func (cir *Circuit) Export(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return cir.Write(file)
}

// Write 导出到数据流
func (cir *Circuit) Write(w io.Writer) error {
	writer := bufio.NewWriter(w)
	ids := make([]types.ComponentID, 0, len(cir.Components))
	for id := range cir.Components {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		comp := cir.Components[id]
		fmt.Fprintf(writer, "%s%d", comp.Kind.Letter(), id)
		for _, end := range comp.Ends {
			fmt.Fprintf(writer, " %d", end.Junction)
		}
		if comp.Kind == types.KindSwitch {
			state := 0
			if comp.Closed {
				state = 1
			}
			fmt.Fprintf(writer, " %d\n", state)
			continue
		}
		fmt.Fprintf(writer, " %g\n", comp.Value)
	}
	return writer.Flush()
}
