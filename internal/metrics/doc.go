/*
包 metrics 提供基于 Prometheus 的编码节点指标采集能力.

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
自动注册机制.同一 namespace 的 Collector 全局共享，重复获取不会
触发重复注册.

# 主要能力

  - 编码指标：调用总数（按 node_class/result 分组）、调用耗时.
  - 缓存指标：命中、未命中与淘汰计数，当前条目数 Gauge，
    按 node_class 分组.
*/
package metrics
