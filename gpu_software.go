// gpu_software.go - software fallback for the GPU Command Executor
//
// Grounded on the software rasterizer fallback in voodoo_vulkan.go: every
// Vulkan-backed feature in this module keeps a pure-Go path for hosts
// without a usable GPU. Here the fallback only needs to track the last
// clear color and the presentable flag, since spec.md §6 assigns CLEAR no
// observable pixel effect beyond opening and closing the render pass.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "sync"

type softwareGPUTarget struct {
	mu           sync.Mutex
	lastClear    [4]float32
	presentable  bool
}

func newSoftwareGPUTarget() *softwareGPUTarget { return &softwareGPUTarget{} }

func (t *softwareGPUTarget) clear(r, g, b, a float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastClear = [4]float32{r, g, b, a}
}

func (t *softwareGPUTarget) markPresentable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.presentable = true
}
