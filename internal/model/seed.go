package model

// seed is the starting dataset used when the on-device store holds no
// readable collection.
var seed = []Item{
	{ID: 1, Category: "หมวดของใช้จิปาถะ", Name: "ทิชชู่", Qty: 0, Unit: "ม้วน", Status: StatusEmpty, Location: "ชั้นเก็บของ"},
	{ID: 2, Category: "หมวดของใช้จิปาถะ", Name: "น้ำยาล้างมิอ", Qty: 2, Unit: "ถุง/ขวด", Status: StatusNormal, Location: "อ่างล้างจาน"},
	{ID: 3, Category: "หมวดของใช้จิปาถะ", Name: "น้ำยาล้างจาน", Qty: 1, Unit: "ถุง/ขวด", Status: StatusLow, Location: "อ่างล้างจาน"},
	{ID: 4, Category: "หมวดของใช้จิปาถะ", Name: "Dettol", Qty: 1, Unit: "ถุง/ขวด", Status: StatusLow, Location: "อ่างล้างจาน"},
	{ID: 5, Category: "หมวดของใช้จิปาถะ", Name: "ถุง 7", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 6, Category: "หมวดของใช้จิปาถะ", Name: "ถุง 8", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 7, Category: "หมวดของใช้จิปาถะ", Name: "ถุง 9", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 8, Category: "หมวดของใช้จิปาถะ", Name: "ถุง 10", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 9, Category: "หมวดของใช้จิปาถะ", Name: "ถุง 12", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 10, Category: "หมวดของใช้จิปาถะ", Name: "ถุง 24", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 11, Category: "หมวดของใช้จิปาถะ", Name: "หนังยาง", Qty: 0, Unit: "แพ็ค", Status: StatusEmpty, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 12, Category: "หมวดของใช้จิปาถะ", Name: "ฟรอยด์", Qty: 0, Unit: "กล่อง", Status: StatusEmpty, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 13, Category: "หมวดของใช้จิปาถะ", Name: "สำลี", Qty: 1, Unit: "ถุง", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 14, Category: "หมวดของใช้ทั่วไป", Name: "ถุงมือ size S", Qty: 6, Unit: "กล่อง", Status: StatusNormal, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 15, Category: "หมวดของใช้ทั่วไป", Name: "ถุงมือ size M", Qty: 6, Unit: "กล่อง", Status: StatusNormal, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 16, Category: "หมวดของใช้ทั่วไป", Name: "ถุงมือ size L", Qty: 2, Unit: "กล่อง", Status: StatusLow, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 17, Category: "หมวดของใช้ทั่วไป", Name: "กล่องทิป", Qty: 36, Unit: "กล่อง", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 18, Category: "หมวดของใช้ทั่วไป", Name: "Tips 10 ul", Qty: 8, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 19, Category: "หมวดของใช้ทั่วไป", Name: "Tips 200 ul", Qty: 4, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 20, Category: "หมวดของใช้ทั่วไป", Name: "Tips 1000 ul", Qty: 1, Unit: "แพ็ค", Status: StatusLow, Location: "ชั้นเก็บของ"},
	{ID: 21, Category: "หมวดของใช้ทั่วไป", Name: "Microcentrifuge (1.5ml)", Qty: 13, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 22, Category: "หมวดของใช้ทั่วไป", Name: "ฟิลเตอร์ 0.22 um (เล็ก)", Qty: 32, Unit: "อัน", Status: StatusNormal, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 23, Category: "หมวดของใช้ทั่วไป", Name: "Tube 15 ml", Qty: 6, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 24, Category: "หมวดของใช้ทั่วไป", Name: "Tube 50 ml", Qty: 17, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 25, Category: "หมวดของใช้ทั่วไป", Name: "ขวด Duran 250 ml", Qty: 0, Unit: "ขวด", Status: StatusEmpty, Location: "ชั้นเก็บของ"},
	{ID: 26, Category: "หมวดของใช้ทั่วไป", Name: "ขวด Duran 500 ml", Qty: 6, Unit: "ขวด", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 27, Category: "หมวดของใช้ทั่วไป", Name: "ขวด Duran 1000 ml", Qty: 4, Unit: "ขวด", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 28, Category: "หมวดของใช้ทั่วไป", Name: "ขวด Duran 2000 ml", Qty: 0, Unit: "ขวด", Status: StatusEmpty, Location: "ชั้นเก็บของ"},
	{ID: 29, Category: "หมวดของใช้ทั่วไป", Name: "ไซริ้งค์ 10 ml", Qty: 4, Unit: "อัน", Status: StatusLow, Location: "ชั้นเก็บของ"},
	{ID: 30, Category: "หมวดของใช้ทั่วไป", Name: "ไซริ้งค์ 50 ml", Qty: 16, Unit: "อัน", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 31, Category: "หมวดของใช้ทั่วไป", Name: "กล่องตัวอย่าง", Qty: 39, Unit: "กล่อง", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 32, Category: "หมวดเลี้ยงเซลล์", Name: "อาหารสูตร MEM", Qty: 0, Unit: "แพ็ค", Status: StatusEmpty, Location: "ตู้เย็น"},
	{ID: 33, Category: "หมวดเลี้ยงเซลล์", Name: "อาหารสูตร DMEM", Qty: 16, Unit: "ซอง", Status: StatusNormal, Location: "ตู้เย็น"},
	{ID: 34, Category: "หมวดเลี้ยงเซลล์", Name: "อาหารสูตร RPMI", Qty: 11, Unit: "ซอง", Status: StatusNormal, Location: "ตู้เย็น"},
	{ID: 35, Category: "หมวดเลี้ยงเซลล์", Name: "FBS stock", Qty: 1, Unit: "ขวด", Status: StatusLow, Location: "ตู้เย็น"},
	{ID: 36, Category: "หมวดเลี้ยงเซลล์", Name: "FBS ขวดแบ่ง", Qty: 12, Unit: "หลอด", Status: StatusNormal, Location: "ตู้เย็น"},
	{ID: 37, Category: "หมวดเลี้ยงเซลล์", Name: "Cryotube", Qty: 0, Unit: "แพ็ค", Status: StatusEmpty, Location: "ชั้นเก็บของ"},
	{ID: 38, Category: "หมวดเลี้ยงเซลล์", Name: "Pipette พลาสติก 10 ml", Qty: 1, Unit: "กล่อง", Status: StatusLow, Location: "ชั้นเก็บของ"},
	{ID: 39, Category: "หมวดเลี้ยงเซลล์", Name: "ชุดกรอง media", Qty: 30, Unit: "ชุด", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 40, Category: "หมวดเลี้ยงเซลล์", Name: "Dish 35*10 mm", Qty: 45, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 41, Category: "หมวดเลี้ยงเซลล์", Name: "Dish 90*20 mm", Qty: 17, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 42, Category: "หมวดเลี้ยงเซลล์", Name: "Flask T25", Qty: 17, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 43, Category: "หมวดเลี้ยงเซลล์", Name: "Flask T75", Qty: 8, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 44, Category: "หมวดเลี้ยงเซลล์", Name: "Scraper", Qty: 73, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 45, Category: "หมวดเลี้ยงเซลล์", Name: "6well plate", Qty: 30, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 46, Category: "หมวดเลี้ยงเซลล์", Name: "12well plate", Qty: 44, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 47, Category: "หมวดเลี้ยงเซลล์", Name: "96well plate", Qty: 50, Unit: "แพ็ค", Status: StatusNormal, Location: "ชั้นเก็บของ"},
	{ID: 48, Category: "หมวดเลี้ยงเซลล์", Name: "Sheath fluid", Qty: 2, Unit: "ขวด", Status: StatusLow, Location: "ชั้นเก็บของ"},
	{ID: 49, Category: "หมวดเลี้ยงเซลล์", Name: "Paraflim", Qty: 0, Unit: "กล่อง", Status: StatusEmpty, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 50, Category: "หมวดเลี้ยงเซลล์", Name: "Trypsin stock", Qty: 0, Unit: "ขวด", Status: StatusEmpty, Location: "ตู้เย็น"},
	{ID: 51, Category: "หมวดเลี้ยงเซลล์", Name: "Trypsin-EDTA", Qty: 1, Unit: "หลอด", Status: StatusLow, Location: "ตู้เย็น"},
	{ID: 52, Category: "หมวดเลี้ยงเซลล์", Name: "Pan/step", Qty: 2, Unit: "หลอด", Status: StatusLow, Location: "ตู้เย็น"},
	{ID: 53, Category: "หมวดเลี้ยงเซลล์", Name: "Trypan blue", Qty: 1, Unit: "หลอด", Status: StatusEmpty, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 54, Category: "หมวดเลี้ยงเซลล์", Name: "HCl", Qty: 40, Unit: "ml", Status: StatusNormal, Location: "โต๊ะแลป/ลิ้นชัก"},
	{ID: 55, Category: "หมวดเลี้ยงเซลล์", Name: "DMSO", Qty: 2500, Unit: "ml", Status: StatusNormal, Location: "โต๊ะแลป/ลิ้นชัก"},
}

// Seed returns a fresh copy of the seed dataset.
func Seed() []Item {
	out := make([]Item, len(seed))
	for i, item := range seed {
		out[i] = item.Clone()
	}
	return out
}
