// Package xconf 基于 koanf 加载 YAML/JSON 配置。
//
// [New] 从文件加载（按扩展名识别格式），[NewFromBytes] 从内存数据加载；
// [Config.Client] 暴露底层 koanf 实例，[Config.Reload] 在解析成功后原子替换。
//
// [Settings] 是 xipbin 命令行的配置结构，[LoadSettings] 把文件中的值叠加在
// [DefaultSettings] 之上并校验。命令行显式指定的 flag 优先于配置文件。
package xconf
