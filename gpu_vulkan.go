//go:build !headless

// gpu_vulkan.go - Vulkan-backed GPU command executor
//
// Grounded on the teacher's VulkanBackend in voodoo_vulkan.go: offscreen
// instance/device/render-pass setup with no swapchain, reduced here to
// exactly what spec.md §6's CLEAR/PRESENT records require — a render pass
// whose load-op is CLEAR, opened and ended synchronously per command.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"

	vk "github.com/goki/vulkan"
)

type vulkanGPUTarget struct {
	ok bool

	instance       vk.Instance
	physicalDevice vk.PhysicalDevice
	device         vk.Device
	queueFamily    uint32
	queue          vk.Queue

	renderPass  vk.RenderPass
	colorImage  vk.Image
	colorMemory vk.DeviceMemory
	colorView   vk.ImageView
	framebuffer vk.Framebuffer

	commandPool   vk.CommandPool
	commandBuffer vk.CommandBuffer
	fence         vk.Fence

	width, height uint32
}

// newVulkanGPUTarget attempts to stand up a minimal offscreen Vulkan
// device. Any failure is returned so the caller can fall back to the
// software target; there is no partial-success state to unwind beyond
// what Go's GC already reclaims for unused handles.
func newVulkanGPUTarget(width, height uint32) (*vulkanGPUTarget, error) {
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan init: %w", err)
	}

	t := &vulkanGPUTarget{width: width, height: height}
	if err := t.createInstance(); err != nil {
		return nil, err
	}
	if err := t.selectPhysicalDevice(); err != nil {
		return nil, err
	}
	if err := t.createDevice(); err != nil {
		return nil, err
	}
	if err := t.createOffscreenTarget(); err != nil {
		return nil, err
	}
	if err := t.createCommandResources(); err != nil {
		return nil, err
	}
	t.ok = true
	return t, nil
}

func (t *vulkanGPUTarget) createInstance() error {
	appInfo := vk.ApplicationInfo{
		SType:         vk.StructureTypeApplicationInfo,
		ApiVersion:    vk.MakeVersion(1, 1, 0),
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}
	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, nil, &instance); res != vk.Success {
		return fmt.Errorf("vkCreateInstance failed: %d", res)
	}
	t.instance = instance
	vk.InitInstance(instance)
	return nil
}

func (t *vulkanGPUTarget) selectPhysicalDevice() error {
	var count uint32
	vk.EnumeratePhysicalDevices(t.instance, &count, nil)
	if count == 0 {
		return fmt.Errorf("no Vulkan-capable GPUs found")
	}
	devices := make([]vk.PhysicalDevice, count)
	vk.EnumeratePhysicalDevices(t.instance, &count, devices)

	for _, device := range devices {
		var qfCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &qfCount, nil)
		families := make([]vk.QueueFamilyProperties, qfCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(device, &qfCount, families)
		for i, qf := range families {
			qf.Deref()
			if qf.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
				t.physicalDevice = device
				t.queueFamily = uint32(i)
				return nil
			}
		}
	}
	return fmt.Errorf("no GPU with a graphics queue")
}

func (t *vulkanGPUTarget) createDevice() error {
	priority := float32(1.0)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: t.queueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{priority},
	}
	deviceInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    []vk.DeviceQueueCreateInfo{queueInfo},
	}
	var device vk.Device
	if res := vk.CreateDevice(t.physicalDevice, &deviceInfo, nil, &device); res != vk.Success {
		return fmt.Errorf("vkCreateDevice failed: %d", res)
	}
	t.device = device
	var queue vk.Queue
	vk.GetDeviceQueue(device, t.queueFamily, 0, &queue)
	t.queue = queue
	return nil
}

func (t *vulkanGPUTarget) createOffscreenTarget() error {
	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Format:    vk.FormatR8g8b8a8Unorm,
		Extent:    vk.Extent3D{Width: t.width, Height: t.height, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     vk.SampleCount1Bit,
		Tiling:      vk.ImageTilingOptimal,
		Usage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferSrcBit),
		InitialLayout: vk.ImageLayoutUndefined,
	}
	var image vk.Image
	if res := vk.CreateImage(t.device, &imageInfo, nil, &image); res != vk.Success {
		return fmt.Errorf("vkCreateImage failed: %d", res)
	}
	t.colorImage = image

	var memReqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(t.device, image, &memReqs)
	memReqs.Deref()
	memTypeIndex, err := t.findMemoryType(memReqs.MemoryTypeBits, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return err
	}
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  memReqs.Size,
		MemoryTypeIndex: memTypeIndex,
	}
	var memory vk.DeviceMemory
	if res := vk.AllocateMemory(t.device, &allocInfo, nil, &memory); res != vk.Success {
		return fmt.Errorf("vkAllocateMemory failed: %d", res)
	}
	t.colorMemory = memory
	vk.BindImageMemory(t.device, image, memory, 0)

	viewInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   vk.FormatR8g8b8a8Unorm,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount:     1,
			LayerCount:     1,
		},
	}
	var view vk.ImageView
	if res := vk.CreateImageView(t.device, &viewInfo, nil, &view); res != vk.Success {
		return fmt.Errorf("vkCreateImageView failed: %d", res)
	}
	t.colorView = view

	attachment := vk.AttachmentDescription{
		Format:         vk.FormatR8g8b8a8Unorm,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutTransferSrcOptimal,
	}
	colorRef := vk.AttachmentReference{Attachment: 0, Layout: vk.ImageLayoutColorAttachmentOptimal}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorRef},
	}
	rpInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{attachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}
	var renderPass vk.RenderPass
	if res := vk.CreateRenderPass(t.device, &rpInfo, nil, &renderPass); res != vk.Success {
		return fmt.Errorf("vkCreateRenderPass failed: %d", res)
	}
	t.renderPass = renderPass

	fbInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderPass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{view},
		Width:           t.width,
		Height:          t.height,
		Layers:          1,
	}
	var framebuffer vk.Framebuffer
	if res := vk.CreateFramebuffer(t.device, &fbInfo, nil, &framebuffer); res != vk.Success {
		return fmt.Errorf("vkCreateFramebuffer failed: %d", res)
	}
	t.framebuffer = framebuffer
	return nil
}

func (t *vulkanGPUTarget) createCommandResources() error {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: t.queueFamily,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}
	var pool vk.CommandPool
	if res := vk.CreateCommandPool(t.device, &poolInfo, nil, &pool); res != vk.Success {
		return fmt.Errorf("vkCreateCommandPool failed: %d", res)
	}
	t.commandPool = pool

	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cmdBuffers := make([]vk.CommandBuffer, 1)
	if res := vk.AllocateCommandBuffers(t.device, &allocInfo, cmdBuffers); res != vk.Success {
		return fmt.Errorf("vkAllocateCommandBuffers failed: %d", res)
	}
	t.commandBuffer = cmdBuffers[0]

	fenceInfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	var fence vk.Fence
	if res := vk.CreateFence(t.device, &fenceInfo, nil, &fence); res != vk.Success {
		return fmt.Errorf("vkCreateFence failed: %d", res)
	}
	t.fence = fence
	return nil
}

func (t *vulkanGPUTarget) findMemoryType(typeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var props vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(t.physicalDevice, &props)
	props.Deref()
	for i := uint32(0); i < props.MemoryTypeCount; i++ {
		props.MemoryTypes[i].Deref()
		if typeBits&(1<<i) != 0 && props.MemoryTypes[i].PropertyFlags&properties == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no suitable memory type")
}

// clear opens the render pass with load-op=CLEAR using (r,g,b,a) and
// immediately ends it, per spec.md §6.
func (t *vulkanGPUTarget) clear(r, g, b, a float32) {
	if !t.ok {
		return
	}
	vk.ResetCommandBuffer(t.commandBuffer, 0)
	beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	vk.BeginCommandBuffer(t.commandBuffer, &beginInfo)

	clearValue := vk.NewClearValue([]float32{r, g, b, a})
	rpBegin := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  t.renderPass,
		Framebuffer: t.framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: t.width, Height: t.height},
		},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{clearValue},
	}
	vk.CmdBeginRenderPass(t.commandBuffer, &rpBegin, vk.SubpassContentsInline)
	vk.CmdEndRenderPass(t.commandBuffer)
	vk.EndCommandBuffer(t.commandBuffer)

	submit := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{t.commandBuffer},
	}
	vk.ResetFences(t.device, 1, []vk.Fence{t.fence})
	vk.QueueSubmit(t.queue, 1, []vk.SubmitInfo{submit}, t.fence)
	vk.WaitForFences(t.device, 1, []vk.Fence{t.fence}, vk.True, ^uint64(0))
}

// markPresentable is a no-op on the Vulkan path: spec.md §6 only requires
// that PRESENT mark the frame ready, which the software target tracks;
// the GPU-rendered image here has no further consumer in this module.
func (t *vulkanGPUTarget) markPresentable() {}
