package catalog

// defaultSongs is the reference catalog shipped with the service.
var defaultSongs = map[Mood][]Song{
	Happy: {
		{Name: "Yaarian (ABCD)", Artist: "Yo Yo Honey Singh", ImageFile: "happy1.jpg", AudioFile: "happy1.mp3"},
		{Name: "Tere Te", Artist: "Guru Randhawa", ImageFile: "happy2.jpg", AudioFile: "happy2.mp3"},
		{Name: "Jatt Diyan Tauran", Artist: "Gippy Grewal, Shipra Goyal", ImageFile: "happy3.jpg", AudioFile: "happy3.mp3"},
		{Name: "Jeene Ke Hain Char Din", Artist: "Sonu Nigam, Sunidhi Chauhan", ImageFile: "happy4.jpg", AudioFile: "happy4.mp3"},
		{Name: "Supreme", Artist: "Shubh", ImageFile: "happy5.jpg", AudioFile: "happy5.mp3"},
		{Name: "Be Mine", Artist: "Shubh", ImageFile: "happy6.jpg", AudioFile: "happy6.mp3"},
	},
	Sad: {
		{Name: "Kabhi Sham Dhale", Artist: "Mohammad Faiz", ImageFile: "sad1.jpg", AudioFile: "sad1.mp3"},
		{Name: "Nira Ishq", Artist: "Guri", ImageFile: "sad2.jpg", AudioFile: "sad2.mp3"},
		{Name: "Pal Pal Dil Ke Paas", Artist: "Arijit Singh", ImageFile: "sad3.jpg", AudioFile: "sad3.mp3"},
		{Name: "Pal", Artist: "Arijit Singh, Javed Mohsin", ImageFile: "sad4.jpg", AudioFile: "sad4.mp3"},
		{Name: "Tum Hi Ho", Artist: "Mithoon, Arijit Singh", ImageFile: "sad5.jpg", AudioFile: "sad5.mp3"},
		{Name: "Tera Hone Laga Hoon", Artist: "Atif Aslam, Alisha Chinai", ImageFile: "sad6.jpg", AudioFile: "sad6.mp3"},
	},
	Motivational: {
		{Name: "52 Bars", Artist: "Karan Aujla", ImageFile: "mot1.jpg", AudioFile: "mot1.mp3"},
		{Name: "Father Saab", Artist: "Khasa Aala Chahar", ImageFile: "mot2.jpg", AudioFile: "mot2.mp3"},
		{Name: "Game", Artist: "Shooter Kahlon, Sidhu Moosewala", ImageFile: "mot3.jpg", AudioFile: "mot3.mp3"},
		{Name: "Get Ready To Fight", Artist: "Benny Dayal", ImageFile: "mot4.jpg", AudioFile: "mot4.mp3"},
		{Name: "Winning Speech", Artist: "Karan Aujla", ImageFile: "mot5.jpg", AudioFile: "mot5.mp3"},
		{Name: "Aarambh Hai Prachand", Artist: "K.K Menon, Abhimannyu Singh", ImageFile: "mot6.jpg", AudioFile: "mot6.mp3"},
	},
	Party: {
		{Name: "Abhi Toh Party Shuru Hui Hai", Artist: "Badshah, Aastha Gill", ImageFile: "party1.jpg", AudioFile: "party1.mp3"},
		{Name: "5 Taara", Artist: "Diljit Dosanjh, Jatinder Shah", ImageFile: "party2.jpg", AudioFile: "party2.mp3"},
		{Name: "Daaru Party", Artist: "Millind Gaba", ImageFile: "party3.jpg", AudioFile: "party3.mp3"},
		{Name: "Party All Night", Artist: "Yo Yo Honey Singh", ImageFile: "party4.jpg", AudioFile: "party4.mp3"},
		{Name: "Kala Chashma", Artist: "Prem Hardeep, Badshah, Neha Kakkar", ImageFile: "party5.jpg", AudioFile: "party5.mp3"},
		{Name: "Tujhe Aksa Beach Ghuma Doon", Artist: "Wajid, Amrita Kak", ImageFile: "party6.jpg", AudioFile: "party6.mp3"},
	},
}

// Default returns the built-in reference catalog.
func Default() *Catalog {
	c, err := New(defaultSongs)
	if err != nil {
		panic("catalog: invalid default catalog: " + err.Error())
	}
	return c
}
