package service

import (
	"encoding/json"
	"fmt"

	"staff-form/backend/internal/model"
)

// ── 结构化差异引擎 ──────────────────────────────────────────
//
// 职责：递归比较两份嵌套 JSON 对象，输出 added/removed/changed 三类路径集合。
//
// 设计决策：
//   - 路径为 "." 拼接的键序列（education.institution）
//   - 两侧均为普通对象（非数组）时递归下钻
//   - 数组视为不透明值：序列化后整体比较，任一元素变化记一条 changed
//   - 标量与数组统一经 json.Marshal 序列化比较（map 键序稳定，结果确定）
//   - 不修改输入
// ─────────────────────────────────────────────────────────────

// ChangedValue 同一路径上新旧两侧的取值
type ChangedValue struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// DiffResult 一次结构化比较的完整结果
// 旧、新两份载荷中出现过的每个叶子路径恰好落入三个集合之一。
type DiffResult struct {
	Added   map[string]interface{}  `json:"added"`
	Removed map[string]interface{}  `json:"removed"`
	Changed map[string]ChangedValue `json:"changed"`
}

// DiffSummary 三类路径的数量统计
type DiffSummary struct {
	Added   int `json:"added"`
	Changed int `json:"changed"`
	Removed int `json:"removed"`
}

// ComputeDiff 比较旧、新两份载荷
// 任一侧为 nil 时按空对象处理。
func ComputeDiff(oldData, newData map[string]interface{}) *DiffResult {
	result := &DiffResult{
		Added:   make(map[string]interface{}),
		Removed: make(map[string]interface{}),
		Changed: make(map[string]ChangedValue),
	}
	diffObjects(oldData, newData, "", result)
	return result
}

// Summary 统计三类路径数量
func (r *DiffResult) Summary() DiffSummary {
	return DiffSummary{
		Added:   len(r.Added),
		Changed: len(r.Changed),
		Removed: len(r.Removed),
	}
}

// IsEmpty 两份载荷无任何差异
func (r *DiffResult) IsEmpty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// ToJSONMap 转为可持久化到 jsonb 列的形式
func (r *DiffResult) ToJSONMap() model.JSONMap {
	changed := make(map[string]interface{}, len(r.Changed))
	for path, cv := range r.Changed {
		changed[path] = map[string]interface{}{"from": cv.From, "to": cv.To}
	}
	return model.JSONMap{
		"added":   map[string]interface{}(r.Added),
		"removed": map[string]interface{}(r.Removed),
		"changed": changed,
	}
}

func diffObjects(oldObj, newObj map[string]interface{}, prefix string, result *DiffResult) {
	for key := range keyUnion(oldObj, newObj) {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		oldVal, inOld := oldObj[key]
		newVal, inNew := newObj[key]

		switch {
		case !inOld:
			result.Added[path] = newVal
		case !inNew:
			result.Removed[path] = oldVal
		default:
			oldChild, oldIsObj := asObject(oldVal)
			newChild, newIsObj := asObject(newVal)
			if oldIsObj && newIsObj {
				diffObjects(oldChild, newChild, path, result)
				continue
			}
			if serialize(oldVal) != serialize(newVal) {
				result.Changed[path] = ChangedValue{From: oldVal, To: newVal}
			}
		}
	}
}

func keyUnion(a, b map[string]interface{}) map[string]struct{} {
	keys := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return keys
}

// asObject 判断值是否为普通对象（数组不算）
func asObject(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case model.JSONMap:
		return map[string]interface{}(m), true
	default:
		return nil, false
	}
}

// serialize 生成稳定的比较表示
// json.Marshal 对 map 按键排序，嵌套结构的输出与键插入顺序无关。
func serialize(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		// 载荷来自 JSON 反序列化，正常不会走到这里
		return fmt.Sprintf("!unserializable:%v", v)
	}
	return string(b)
}
