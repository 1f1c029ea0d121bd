// Package xrun 基于 errgroup + context 并发运行一组有限任务。
//
// [Group] 在任一任务出错时取消其余任务，[WithLimit] 限制并发数。
// xipbin 的 bucket 命令用它并行读取多个输入文件。
package xrun
